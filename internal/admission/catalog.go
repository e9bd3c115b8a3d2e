package admission

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Spok95/university-assistant-bot/internal/sheet"
)

const (
	KindBachelor     = "bachelor"
	KindMagistratura = "magistratura"
	KindDoctorantura = "doctorantura"

	TestName = "Тест профессиональных предпочтений Климова"

	subjectsColumn = "Профильные предметы"
	minScoreColumn = "Проходной балл"
)

type Paths struct {
	Bachelor        string
	Magistratura    string
	Doctorantura    string
	KlimovTest      string
	Recommendations string
}

type ProgramList struct {
	Type     string         `json:"type"`
	Count    int            `json:"count"`
	Programs []sheet.Record `json:"programs"`
}

type KlimovTest struct {
	TestName       string     `json:"test_name"`
	QuestionsCount int        `json:"questions_count"`
	Questions      []Question `json:"questions"`
}

type SubjectSearch struct {
	Subjects []string       `json:"subjects"`
	Count    int            `json:"count"`
	Programs []sheet.Record `json:"programs"`
	// Chances[i] относится к Programs[i]; заполняется RateScore
	Chances []string `json:"chances,omitempty"`
}

// RateScore оценивает шансы балла ЕНТ по каждой найденной программе.
// Без проходного балла в строке шанс пустой.
func (s *SubjectSearch) RateScore(score int) {
	s.Chances = make([]string, len(s.Programs))
	for i, p := range s.Programs {
		minScore, err := strconv.Atoi(strings.TrimSpace(p.Value(minScoreColumn)))
		if err != nil {
			continue
		}
		s.Chances[i] = EntChance(score, minScore)
	}
}

// Catalog неизменяем после LoadCatalog.
type Catalog struct {
	bachelor     *sheet.Table
	magistratura *sheet.Table
	doctorantura *sheet.Table
	questions    []Question
	recs         map[Category]Recommendation
}

// LoadCatalog никогда не падает: отсутствующие или битые файлы заменяются
// встроенными данными (бакалавриат: пустым списком), причина пишется в лог.
func LoadCatalog(p Paths, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Catalog{}

	if t, err := sheet.ReadCSV(p.Bachelor, ','); err != nil {
		log.Warn("bachelor programs unavailable", zap.String("path", p.Bachelor), zap.Error(err))
		c.bachelor = &sheet.Table{Name: KindBachelor}
	} else {
		c.bachelor = t
	}

	if t, err := sheet.ReadCSVAuto(p.Magistratura); err != nil {
		log.Warn("magistratura programs: using built-in list", zap.String("path", p.Magistratura), zap.Error(err))
		c.magistratura = fallbackMagistratura()
	} else {
		c.magistratura = t
	}

	if t, err := sheet.ReadCSVAuto(p.Doctorantura); err != nil {
		log.Warn("doctorantura programs: using built-in list", zap.String("path", p.Doctorantura), zap.Error(err))
		c.doctorantura = fallbackDoctorantura()
	} else {
		c.doctorantura = t
	}

	if qs, err := loadQuestions(p.KlimovTest); err != nil {
		log.Warn("klimov test: using built-in questions", zap.String("path", p.KlimovTest), zap.Error(err))
		c.questions = fallbackQuestions()
	} else {
		c.questions = qs
	}

	if recs, err := loadRecommendations(p.Recommendations); err != nil {
		log.Warn("klimov recommendations: using built-in set", zap.String("path", p.Recommendations), zap.Error(err))
		c.recs = fallbackRecommendations()
	} else {
		c.recs = recs
	}

	log.Info("admission catalog loaded",
		zap.Int("bachelor", c.bachelor.Len()),
		zap.Int("magistratura", c.magistratura.Len()),
		zap.Int("doctorantura", c.doctorantura.Len()),
		zap.Int("questions", len(c.questions)),
		zap.Int("recommendations", len(c.recs)),
	)
	return c
}

func loadQuestions(path string) ([]Question, error) {
	t, err := sheet.ReadCSV(path, ',')
	if err != nil {
		return nil, err
	}
	var out []Question
	for i := 0; i < t.Len(); i++ {
		r := t.Record(i)
		id, err := strconv.Atoi(r.Value("question_id"))
		if err != nil {
			return nil, errRow(path, i, "question_id", err)
		}
		out = append(out, Question{
			ID:      id,
			OptionA: Option{Text: r.Value("option_a_text"), Category: Category(r.Value("option_a_category"))},
			OptionB: Option{Text: r.Value("option_b_text"), Category: Category(r.Value("option_b_category"))},
		})
	}
	return out, nil
}

func loadRecommendations(path string) (map[Category]Recommendation, error) {
	t, err := sheet.ReadCSV(path, ',')
	if err != nil {
		return nil, err
	}
	out := map[Category]Recommendation{}
	for i := 0; i < t.Len(); i++ {
		r := t.Record(i)
		out[Category(r.Value("category_code"))] = Recommendation{
			Name:        r.Value("category_name"),
			Description: r.Value("description"),
			Programs:    splitPrograms(r.Value("recommended_programs")),
		}
	}
	return out, nil
}

func splitPrograms(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func records(t *sheet.Table) []sheet.Record {
	if t == nil {
		return []sheet.Record{}
	}
	return t.Records()
}

// Programs: список программ уровня kind. Для неизвестного уровня список пустой.
func (c *Catalog) Programs(kind string) ProgramList {
	var t *sheet.Table
	switch kind {
	case KindBachelor:
		t = c.bachelor
	case KindMagistratura:
		t = c.magistratura
	case KindDoctorantura:
		t = c.doctorantura
	}
	progs := records(t)
	return ProgramList{Type: kind, Count: len(progs), Programs: progs}
}

func (c *Catalog) Test() KlimovTest {
	return KlimovTest{TestName: TestName, QuestionsCount: len(c.questions), Questions: c.questions}
}

func (c *Catalog) Recommend(answers []Answer) Result {
	return Score(c.questions, c.recs, answers)
}

// SearchBySubjects: программы бакалавриата, у которых в профильных предметах
// встречаются оба предмета (без учёта регистра).
func (c *Catalog) SearchBySubjects(subject1, subject2 string) SubjectSearch {
	s1, s2 := strings.ToLower(subject1), strings.ToLower(subject2)
	res := SubjectSearch{Subjects: []string{subject1, subject2}, Programs: []sheet.Record{}}
	col := c.bachelor.Col(subjectsColumn)
	if col < 0 {
		return res
	}
	for i := 0; i < c.bachelor.Len(); i++ {
		subj := strings.ToLower(c.bachelor.Cell(i, col))
		if strings.Contains(subj, s1) && strings.Contains(subj, s2) {
			res.Programs = append(res.Programs, c.bachelor.Record(i))
		}
	}
	res.Count = len(res.Programs)
	return res
}

// EntChance: грубая оценка шансов по разнице балла ЕНТ и проходного.
func EntChance(score, minScore int) string {
	switch d := score - minScore; {
	case d >= 20:
		return "Высокий шанс 🎯"
	case d >= 10:
		return "Хороший шанс ✅"
	case d >= 0:
		return "Средний шанс ⚠️"
	default:
		return "Низкий шанс ❌"
	}
}
