package seeder

// Defaults returns the demo data set in dependency order.
func Defaults() []Seeder {
	return []Seeder{
		JobsSeeder{Jobs: demoJobs},
		CandidatesSeeder{Candidates: demoCandidates},
	}
}
