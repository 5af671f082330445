package search

// disciplineGroups maps a normalized discipline term to the Hauptgruppe
// letters covering it. Used only when scoring top-level groups: a
// discipline names a field, and fields live at the top of the hierarchy.
var disciplineGroups = map[string][]string{
	// A - Allgemeines
	"bibliographie":      {"A"},
	"wissenschaftskunde": {"A"},
	"medienwissenschaft": {"A"},
	"kommunikation":      {"A"},
	"bibliothekswesen":   {"A"},

	// B - Theologie und Religionswissenschaften
	"theologie":            {"B"},
	"religionswissenschaft": {"B"},
	"religion":             {"B"},

	// C - Philosophie und Psychologie
	"philosophie": {"C"},
	"psychologie": {"C"},
	"ethik":       {"C"},

	// D - Pädagogik
	"pädagogik":            {"D"},
	"erziehungswissenschaft": {"D"},
	"bildung":              {"D"},
	"didaktik":             {"D"},

	// G - Germanistik
	"germanistik":        {"G"},
	"literaturwissenschaft": {"G"},
	"linguistik":         {"G"},
	"sprachwissenschaft": {"G"},

	// L - Ethnologie, Kunst- und Kulturwissenschaften
	"kulturwissenschaft": {"L"},
	"ethnologie":         {"L"},
	"archäologie":        {"L"},
	"kunstgeschichte":    {"L"},
	"kunst":              {"L"},
	"musikwissenschaft":  {"L"},
	"musik":              {"L"},

	// M - Politologie, Soziologie, Militärwissenschaft
	"politikwissenschaft": {"M"},
	"politologie":         {"M"},
	"politik":             {"M"},
	"soziologie":          {"M"},
	"sozialwissenschaften": {"M"},
	"migrationsforschung": {"M"},
	"militärwissenschaft": {"M"},

	// N - Geschichte
	"geschichte":         {"N"},
	"geschichtswissenschaft": {"N"},
	"zeitgeschichte":     {"N"},

	// P - Rechtswissenschaft
	"rechtswissenschaft": {"P"},
	"recht":              {"P"},
	"jura":               {"P"},

	// Q - Wirtschaftswissenschaften
	"wirtschaftswissenschaft": {"Q"},
	"wirtschaft":              {"Q"},
	"ökonomie":                {"Q"},
	"betriebswirtschaft":      {"Q"},
	"volkswirtschaft":         {"Q"},

	// S - Mathematik und Informatik
	"mathematik": {"S"},
	"informatik": {"S"},
	"statistik":  {"S"},

	// V - Chemie und Pharmazie
	"chemie":    {"V"},
	"pharmazie": {"V"},

	// W / Y - Biologie und Medizin
	"biologie": {"W"},
	"botanik":  {"W"},
	"zoologie": {"W"},
	"genetik":  {"W"},
	"ökologie": {"W"},
	"medizin":  {"W", "Y"},

	// Z - Land- und Forstwirtschaft, Technik, Sport
	"landwirtschaft":   {"Z"},
	"forstwirtschaft":  {"Z"},
	"technik":          {"Z"},
	"ingenieurwesen":   {"Z"},
	"sportwissenschaft": {"Z"},
	"sport":            {"Z"},
}

// KnownDiscipline reports whether the term names a discipline the
// Hauptgruppe table covers. Extractors use it to classify terms.
func KnownDiscipline(term string) bool {
	_, ok := disciplineGroups[normalizeTerm(term)]
	return ok
}

// disciplineMatchesGroup reports whether a normalized discipline term maps
// to the Hauptgruppe the notation belongs to (its leading letter).
func disciplineMatchesGroup(term, notation string) bool {
	if notation == "" {
		return false
	}
	for _, letter := range disciplineGroups[term] {
		if notation[:1] == letter {
			return true
		}
	}
	return false
}
