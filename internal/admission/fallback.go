package admission

import (
	"fmt"

	"github.com/Spok95/university-assistant-bot/internal/apperr"
	"github.com/Spok95/university-assistant-bot/internal/sheet"
)

func errRow(path string, row int, col string, err error) error {
	return apperr.Wrap(err, apperr.ErrDataUnavailable, fmt.Sprintf("%s: строка %d, колонка %s", path, row+2, col))
}

func fallbackMagistratura() *sheet.Table {
	return &sheet.Table{
		Name: KindMagistratura,
		Columns: []string{
			"Направление", "Код", "Группа образовательных программ",
			"Профильные предметы комплексного тестирования", "Проходной балл",
		},
		Rows: [][]string{
			{"Научно-педагогическое (2 года)", "М001", "Педагогика и психология", "Педагогика, Психология", "75"},
			{"Профильное (1 год)", "М002", "Право", "Теория государства и права", "50"},
		},
	}
}

func fallbackDoctorantura() *sheet.Table {
	return &sheet.Table{
		Name:    KindDoctorantura,
		Columns: []string{"Код", "Группа образовательных программ", "Необходимый уровень образования"},
		Rows: [][]string{
			{"D001", "Педагогика и психология", "Магистратура"},
			{"D010", "Подготовка педагогов математики", "Магистратура"},
		},
	}
}

func fallbackQuestions() []Question {
	return []Question{
		{ID: 1, OptionA: Option{"Ухаживать за животными", Nature}, OptionB: Option{"Обслуживать машины, приборы", Tech}},
		{ID: 2, OptionA: Option{"Помогать больным людям", Person}, OptionB: Option{"Составлять таблицы, схемы", Sign}},
	}
}

func fallbackRecommendations() map[Category]Recommendation {
	return map[Category]Recommendation{
		Nature: {
			Name:        "Человек - Природа",
			Description: "Работа с природой и животными",
			Programs:    []string{"B013 Подготовка учителей биологии", "B050 Биологические науки"},
		},
		Tech: {
			Name:        "Человек - Техника",
			Description: "Работа с техникой и механизмами",
			Programs:    []string{"B011 Подготовка учителей информатики", "B057 Информационные технологии"},
		},
		Person: {
			Name:        "Человек - Человек",
			Description: "Работа с людьми",
			Programs:    []string{"B001 Педагогика и психология", "B018 Подготовка учителей иностранного языка"},
		},
		Sign: {
			Name:        "Человек - Знаковая система",
			Description: "Работа с данными и знаками",
			Programs:    []string{"B009 Подготовка учителей математики", "B055 Математика и статистика"},
		},
		Art: {
			Name:        "Человек - Художественный образ",
			Description: "Творческая работа",
			Programs:    []string{"B006 Подготовка учителей музыки", "B007 Подготовка учителей художественного труда"},
		},
	}
}
