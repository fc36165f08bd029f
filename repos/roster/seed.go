package roster

// SeedPlayers returns the fixed first-boot roster. The read path writes it
// back to the store the first time it finds no (or an empty) document, so a
// fresh deployment never serves an empty roster.
func SeedPlayers() []Player {
	seed := []Player{
		{ID: "1", Name: "Scott Swift", Email: "scott.swift@example.com"},
		{ID: "2", Name: "Aleks Trifunovic", Email: "atrifunovic@example.com"},
		{ID: "3", Name: "Andre Beverly", Email: "abeverly@example.com"},
		{ID: "4", Name: "Jason Choi", Email: "jason.choi@example.com"},
		{ID: "5", Name: "Kip Theno", Email: "kip.theno@example.com"},
		{ID: "6", Name: "Kolin Watts", Email: "kolinwatts@example.com"},
		{ID: "7", Name: "Paul Magaletta", Email: "pmagaletta@example.com"},
		{ID: "8", Name: "Vitavat Buranabul", Email: "vito.b@example.com"},
		{ID: "9", Name: "Roy Remsburg", Email: "rremsburg@example.com"},
		{ID: "10", Name: "Mike Malinowski", Email: "mikemalinowski@example.com"},
		{ID: "11", Name: "Andrew Neal", Email: "a.neal@example.com"},
		{ID: "12", Name: "Jason Withee", Email: "jwithee@example.com"},
		{ID: "13", Name: "Ian Davis", Email: "ian.davis@example.com"},
		{ID: "14", Name: "Glenn Hutchinson", Email: "glenn.hutchinson@example.com"},
		{ID: "15", Name: "Brent McHenry", Email: "brentmchenry@example.com"},
		{ID: "16", Name: "Justin Medeiros", Email: "justinmedeiros@example.com"},
	}

	for i := range seed {
		seed[i].Position = PositionForward
		seed[i].SkillLevel = 5
		seed[i].Status = StatusPending
		seed[i].Role = RoleRegular
		seed[i].FeesPaid = false
	}
	return seed
}
