package seeder

func Defaults() []Seeder {
	return []Seeder{
		QuestionsSeeder{},
		CareersSeeder{},
	}
}
