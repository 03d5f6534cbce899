package seeder

import (
	"context"

	"career-guidance/internal/database"
	"career-guidance/internal/domain/career"
	"career-guidance/internal/domain/riasec"
	"career-guidance/internal/repository"
)

func cats(cs ...riasec.Category) []riasec.Category { return cs }

func DefaultCareers() []career.Career {
	R, I, A := riasec.Realistic, riasec.Investigative, riasec.Artistic
	S, E, C := riasec.Social, riasec.Enterprising, riasec.Conventional
	return []career.Career{
		{ID: "electrician", Title: "Electrician", Categories: cats(R, C), Description: "Installs and maintains electrical wiring and equipment in buildings.", Education: "Apprenticeship", SalaryRange: "45k-85k", Outlook: "Growing"},
		{ID: "mechanical-engineer", Title: "Mechanical Engineer", Categories: cats(R, I), Description: "Designs machines, engines and mechanical systems.", Education: "Bachelor's degree", SalaryRange: "70k-120k", Outlook: "Stable"},
		{ID: "carpenter", Title: "Carpenter", Categories: cats(R), Description: "Builds and repairs wooden structures and furniture.", Education: "Apprenticeship", SalaryRange: "40k-70k", Outlook: "Stable"},
		{ID: "park-ranger", Title: "Park Ranger", Categories: cats(R, S), Description: "Protects natural areas and guides visitors outdoors.", Education: "Bachelor's degree", SalaryRange: "40k-65k", Outlook: "Stable"},
		{ID: "data-scientist", Title: "Data Scientist", Categories: cats(I, C), Description: "Analyzes large data sets to answer business and research questions.", Education: "Master's degree", SalaryRange: "90k-150k", Outlook: "Growing fast"},
		{ID: "software-engineer", Title: "Software Engineer", Categories: cats(I, R), Description: "Designs, builds and tests software systems.", Education: "Bachelor's degree", SalaryRange: "80k-160k", Outlook: "Growing fast"},
		{ID: "biologist", Title: "Biologist", Categories: cats(I), Description: "Studies living organisms through laboratory and field research.", Education: "Master's degree", SalaryRange: "55k-95k", Outlook: "Stable"},
		{ID: "physician", Title: "Physician", Categories: cats(I, S), Description: "Diagnoses and treats illness and injury.", Education: "Doctoral degree", SalaryRange: "180k-350k", Outlook: "Growing"},
		{ID: "graphic-designer", Title: "Graphic Designer", Categories: cats(A, E), Description: "Creates visual concepts for brands, print and digital media.", Education: "Bachelor's degree", SalaryRange: "40k-80k", Outlook: "Stable"},
		{ID: "writer", Title: "Writer", Categories: cats(A, I), Description: "Writes articles, books, scripts and other content.", Education: "Bachelor's degree", SalaryRange: "35k-90k", Outlook: "Stable"},
		{ID: "musician", Title: "Musician", Categories: cats(A), Description: "Performs, composes or records music.", Education: "Varies", SalaryRange: "25k-90k", Outlook: "Competitive"},
		{ID: "architect", Title: "Architect", Categories: cats(A, R, I), Description: "Plans and designs buildings and public spaces.", Education: "Master's degree", SalaryRange: "65k-130k", Outlook: "Stable"},
		{ID: "teacher", Title: "Teacher", Categories: cats(S, A), Description: "Plans lessons and instructs students in a school setting.", Education: "Bachelor's degree", SalaryRange: "40k-75k", Outlook: "Stable"},
		{ID: "counselor", Title: "Counselor", Categories: cats(S), Description: "Helps clients manage personal, career or mental health challenges.", Education: "Master's degree", SalaryRange: "45k-80k", Outlook: "Growing"},
		{ID: "nurse", Title: "Registered Nurse", Categories: cats(S, I), Description: "Provides and coordinates patient care in clinics and hospitals.", Education: "Bachelor's degree", SalaryRange: "60k-110k", Outlook: "Growing fast"},
		{ID: "social-worker", Title: "Social Worker", Categories: cats(S, E), Description: "Connects individuals and families with support services.", Education: "Bachelor's degree", SalaryRange: "40k-70k", Outlook: "Growing"},
		{ID: "entrepreneur", Title: "Entrepreneur", Categories: cats(E), Description: "Starts and grows new business ventures.", Education: "Varies", SalaryRange: "Varies", Outlook: "Varies"},
		{ID: "sales-manager", Title: "Sales Manager", Categories: cats(E, S), Description: "Leads sales teams and sets revenue targets.", Education: "Bachelor's degree", SalaryRange: "70k-150k", Outlook: "Stable"},
		{ID: "lawyer", Title: "Lawyer", Categories: cats(E, I), Description: "Advises clients and represents them in legal matters.", Education: "Doctoral degree", SalaryRange: "80k-200k", Outlook: "Stable"},
		{ID: "marketing-manager", Title: "Marketing Manager", Categories: cats(E, A), Description: "Plans campaigns that promote products and services.", Education: "Bachelor's degree", SalaryRange: "70k-140k", Outlook: "Growing"},
		{ID: "accountant", Title: "Accountant", Categories: cats(C, E), Description: "Prepares and examines financial records and tax returns.", Education: "Bachelor's degree", SalaryRange: "50k-100k", Outlook: "Stable"},
		{ID: "librarian", Title: "Librarian", Categories: cats(C, S), Description: "Organizes collections and helps patrons find information.", Education: "Master's degree", SalaryRange: "45k-75k", Outlook: "Stable"},
		{ID: "database-administrator", Title: "Database Administrator", Categories: cats(C, I), Description: "Keeps databases secure, backed up and performant.", Education: "Bachelor's degree", SalaryRange: "70k-120k", Outlook: "Growing"},
		{ID: "office-manager", Title: "Office Manager", Categories: cats(C, E), Description: "Coordinates administrative work and office operations.", Education: "Associate degree", SalaryRange: "40k-70k", Outlook: "Stable"},
	}
}

type CareersSeeder struct{}

func (CareersSeeder) Name() string { return "careers" }

func (CareersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "careers", "id", "title", "categories", "description", "education", "salary_range", "outlook", "position"); err != nil {
		return err
	}
	_, err := repository.NewPostgresCareerRepository(db).Upsert(ctx, DefaultCareers())
	return err
}
