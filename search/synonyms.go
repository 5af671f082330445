package search

// synonyms maps a normalized term to equivalents commonly found on RVK
// labels. Registers differ between extracted concepts and cataloging
// vocabulary ("Migration" vs "Zuwanderung"); this table bridges them
// without any fuzzy matching.
var synonyms = map[string][]string{
	"migration":             {"zuwanderung", "einwanderung", "auswanderung", "flucht", "vertreibung", "migrationsforschung", "bevölkerungsbewegung"},
	"integration":           {"soziale integration", "eingliederung", "inkulturation", "integrationsprozesse", "assimilation"},
	"interkulturell":        {"kulturtransfer", "interkulturalität", "multikulturell", "interkulturelle beziehungen", "kulturkontakt"},
	"stadtforschung":        {"urbanistik", "stadtentwicklung", "kommunal", "stadtsoziologie", "urban"},
	"soziologie":            {"gesellschaftswissenschaften", "sozialwissenschaften", "gesellschaft"},
	"gesellschaftlicher wandel": {"sozialer wandel", "soziokulturell", "demographischer wandel", "transformation"},
	"informatik":            {"computer", "software", "algorithmus", "digital", "datenverarbeitung"},
	"medizin":               {"gesundheit", "klinik", "diagnose", "therapie", "heilkunde"},
	"bildung":               {"erziehung", "pädagogik", "schule", "universität", "ausbildung", "lernen"},
	"recht":                 {"gesetz", "juristisch", "justiz", "rechtswissenschaft"},
	"wirtschaft":            {"ökonomie", "management", "finanzen", "betrieb", "unternehmen"},
	"geschichte":            {"historisch", "vergangenheit", "zeitgeschichte", "historie"},
	"kunst":                 {"ästhetik", "künstlerisch", "design", "kultur"},
	"musik":                 {"musikwissenschaft", "musikalisch", "komposition"},
	"literatur":             {"schrifttum", "text", "roman", "dichtung", "literarisch"},
	"philosophie":           {"denken", "ethik", "metaphysik", "erkenntnistheorie"},
	"psychologie":           {"verhalten", "kognition", "entwicklung", "persönlichkeit"},
	"politik":               {"staat", "regierung", "demokratie", "verwaltung", "politisch"},
	"naturwissenschaft":     {"physik", "chemie", "biologie", "wissenschaft", "forschung"},
	"mathematik":            {"zahlen", "statistik", "algebra", "geometrie"},
}

// synonymsFor returns the synonym list for a normalized term, nil when
// none is known.
func synonymsFor(term string) []string {
	return synonyms[term]
}
