// Package admission: каталог образовательных программ и тест Климова.
package admission

import (
	"bytes"
	"encoding/json"
)

type Category string

const (
	Nature Category = "nature"
	Tech   Category = "tech"
	Person Category = "person"
	Sign   Category = "sign"
	Art    Category = "art"
)

// Categories: фиксированный порядок. При равенстве баллов побеждает первая.
var Categories = []Category{Nature, Tech, Person, Sign, Art}

func (c Category) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

type Option struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

type Question struct {
	ID      int    `json:"id"`
	OptionA Option `json:"option_a"`
	OptionB Option `json:"option_b"`
}

// Answer: QuestionID это индекс в списке вопросов (с нуля), SelectedOption "a" или "b".
type Answer struct {
	QuestionID     int    `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

type Recommendation struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Programs    []string `json:"programs,omitempty"`
}

// Scores сериализуется в порядке Categories.
type Scores map[Category]int

func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(string(c))
		v, _ := json.Marshal(s[c])
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type Result struct {
	Scores          Scores         `json:"scores"`
	LeadingCategory Category       `json:"leading_category"`
	LeadingScore    int            `json:"leading_score"`
	Recommendation  Recommendation `json:"recommendation"`
}

// Score считает ответы по категориям. Ответы на несуществующие вопросы
// пропускаются; "a" выбирает первый вариант, всё остальное: второй.
func Score(questions []Question, recs map[Category]Recommendation, answers []Answer) Result {
	scores := make(Scores, len(Categories))
	for _, c := range Categories {
		scores[c] = 0
	}
	for _, a := range answers {
		if a.QuestionID < 0 || a.QuestionID >= len(questions) {
			continue
		}
		q := questions[a.QuestionID]
		cat := q.OptionB.Category
		if a.SelectedOption == "a" {
			cat = q.OptionA.Category
		}
		if cat.Known() {
			scores[cat]++
		}
	}

	res := Result{Scores: scores, LeadingCategory: Categories[0], LeadingScore: scores[Categories[0]]}
	for _, c := range Categories[1:] {
		if scores[c] > res.LeadingScore {
			res.LeadingCategory, res.LeadingScore = c, scores[c]
		}
	}
	res.Recommendation = recs[res.LeadingCategory]
	return res
}
