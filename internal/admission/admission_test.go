package admission

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/university-assistant-bot/internal/sheet"
)

func TestScoreTwoQuestions(t *testing.T) {
	qs := fallbackQuestions()
	res := Score(qs, fallbackRecommendations(), []Answer{{0, "a"}, {1, "b"}})

	assert.Equal(t, Scores{Nature: 1, Tech: 0, Person: 0, Sign: 1, Art: 0}, res.Scores)
	assert.Equal(t, Nature, res.LeadingCategory)
	assert.Equal(t, 1, res.LeadingScore)
	assert.Equal(t, "Человек - Природа", res.Recommendation.Name)
}

func TestScoreIgnoresOutOfRangeAndUnknown(t *testing.T) {
	qs := []Question{
		{ID: 1, OptionA: Option{"x", "space"}, OptionB: Option{"y", Art}},
	}
	res := Score(qs, nil, []Answer{{0, "a"}, {0, "b"}, {0, "B"}, {5, "a"}, {-1, "b"}})

	assert.Equal(t, 2, res.Scores[Art])
	assert.Equal(t, Art, res.LeadingCategory)
	assert.Equal(t, Recommendation{}, res.Recommendation)
}

func TestScoreEmptyAnswers(t *testing.T) {
	res := Score(fallbackQuestions(), fallbackRecommendations(), nil)
	assert.Equal(t, Nature, res.LeadingCategory)
	assert.Equal(t, 0, res.LeadingScore)
	for _, c := range Categories {
		assert.Equal(t, 0, res.Scores[c])
	}
}

func TestScoresMarshalOrder(t *testing.T) {
	raw, err := json.Marshal(Scores{Art: 2, Tech: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"nature":0,"tech":1,"person":0,"sign":0,"art":2}`, string(raw))

	raw, err = json.Marshal(Score(nil, nil, nil))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"recommendation":{}`)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadCatalogFallbacks(t *testing.T) {
	dir := t.TempDir()
	c := LoadCatalog(Paths{
		Bachelor:        filepath.Join(dir, "bachelor.csv"),
		Magistratura:    filepath.Join(dir, "magistratura.csv"),
		Doctorantura:    filepath.Join(dir, "doctorantura.csv"),
		KlimovTest:      filepath.Join(dir, "test_klimova.csv"),
		Recommendations: filepath.Join(dir, "recomendations_klimov.csv"),
	}, nil)

	assert.Equal(t, 0, c.Programs(KindBachelor).Count)
	mag := c.Programs(KindMagistratura)
	require.Equal(t, 2, mag.Count)
	assert.Equal(t, "М001", mag.Programs[0].Value("Код"))
	assert.Equal(t, "D010", c.Programs(KindDoctorantura).Programs[1].Value("Код"))
	assert.Equal(t, 2, c.Test().QuestionsCount)
	assert.Equal(t, TestName, c.Test().TestName)
	assert.Len(t, fallbackRecommendations(), len(Categories))

	unknown := c.Programs("college")
	assert.Equal(t, 0, unknown.Count)
	assert.NotNil(t, unknown.Programs)
}

func TestLoadCatalogFromFiles(t *testing.T) {
	dir := t.TempDir()
	p := Paths{
		Bachelor: writeFile(t, dir, "bachelor.csv",
			"Код,Название,Профильные предметы,Проходной балл\n"+
				"B057,Информационные технологии,\"Математика, Информатика\",75\n"+
				"B009,Подготовка учителей математики,\"Математика, Физика\",70\n"+
				"B001,Педагогика и психология,\"Биология, География\",65\n"),
		Magistratura: writeFile(t, dir, "magistratura.csv", "Код;Группа\nM100;Экономика\n"),
		Doctorantura: writeFile(t, dir, "doctorantura.csv", "Код,Группа\nD100,Физика\n"),
		KlimovTest: writeFile(t, dir, "test_klimova.csv",
			"question_id,option_a_text,option_a_category,option_b_text,option_b_category\n"+
				"1,Рисовать,art,Считать,sign\n"+
				"2,Чинить,tech,Лечить,person\n"+
				"3,Сажать лес,nature,Петь,art\n"),
		Recommendations: writeFile(t, dir, "recomendations_klimov.csv",
			"category_code,category_name,description,recommended_programs\n"+
				"art,Человек - Художественный образ,Творчество,B006 Музыка; B007 Труд\n"),
	}
	c := LoadCatalog(p, nil)

	assert.Equal(t, 3, c.Programs(KindBachelor).Count)
	assert.Equal(t, "M100", c.Programs(KindMagistratura).Programs[0].Value("Код"))
	assert.Equal(t, "D100", c.Programs(KindDoctorantura).Programs[0].Value("Код"))
	assert.Equal(t, 3, c.Test().QuestionsCount)

	res := c.Recommend([]Answer{{0, "a"}, {2, "b"}, {1, "a"}})
	assert.Equal(t, Art, res.LeadingCategory)
	assert.Equal(t, 2, res.LeadingScore)
	assert.Equal(t, []string{"B006 Музыка", "B007 Труд"}, res.Recommendation.Programs)

	// лидер без рекомендации в файле
	res = c.Recommend([]Answer{{1, "b"}})
	assert.Equal(t, Person, res.LeadingCategory)
	assert.Empty(t, res.Recommendation.Name)

	found := c.SearchBySubjects("математика", "ФИЗИКА")
	require.Equal(t, 1, found.Count)
	assert.Equal(t, "B009", found.Programs[0].Value("Код"))
	assert.Equal(t, []string{"математика", "ФИЗИКА"}, found.Subjects)

	assert.Equal(t, 2, c.SearchBySubjects("Математика", "").Count)
	assert.Equal(t, 0, c.SearchBySubjects("Химия", "Физика").Count)
}

func TestLoadCatalogBadQuestions(t *testing.T) {
	dir := t.TempDir()
	c := LoadCatalog(Paths{
		KlimovTest: writeFile(t, dir, "test.csv", "question_id,option_a_text\nодин,x\n"),
	}, nil)
	assert.Equal(t, fallbackQuestions(), c.Test().Questions)
}

func TestEntChance(t *testing.T) {
	assert.Equal(t, "Высокий шанс 🎯", EntChance(95, 75))
	assert.Equal(t, "Хороший шанс ✅", EntChance(85, 75))
	assert.Equal(t, "Средний шанс ⚠️", EntChance(75, 75))
	assert.Equal(t, "Низкий шанс ❌", EntChance(60, 75))
}

func TestSubjectSearchRateScore(t *testing.T) {
	found := SubjectSearch{Programs: []sheet.Record{
		{{Name: "Код", Value: "B057"}, {Name: "Проходной балл", Value: "75"}},
		{{Name: "Код", Value: "B009"}, {Name: "Проходной балл", Value: "нет данных"}},
	}}
	found.RateScore(88)
	assert.Equal(t, []string{"Хороший шанс ✅", ""}, found.Chances)
}
