package place

// Gazetteer of canonical regions and the surface forms that indicate them.
// Sub-national entities map to their country; continents and the global
// bucket keep indicators for label matching but never act as alias targets
// for cities, so "Chemnitz" resolves to "Deutschland", not to "Europa".
var regionIndicators = map[string][]string{
	"deutschland": {
		"deutschland", "german", "bundesrepublik", "brd", "deutsche",
		"sachsen", "chemnitz", "dresden", "leipzig", "ostdeutschland",
		"bayern", "münchen", "nürnberg",
		"nrw", "nordrhein-westfalen", "köln", "düsseldorf", "dortmund", "essen",
		"baden-württemberg", "stuttgart", "karlsruhe", "mannheim",
		"hessen", "frankfurt", "wiesbaden", "kassel", "darmstadt",
		"niedersachsen", "hannover", "braunschweig", "göttingen",
	},
	"europa":         {"europa", "european", "eu", "europäisch"},
	"usa":            {"usa", "america", "vereinigte staaten", "amerikanisch", "new york", "kalifornien"},
	"großbritannien": {"großbritannien", "england", "britain", "british", "uk"},
	"frankreich":     {"frankreich", "france", "französisch", "paris"},
	"italien":        {"italien", "italy", "italienisch", "rom"},
	"spanien":        {"spanien", "spain", "spanisch", "madrid"},
	"russland":       {"russland", "russia", "russisch", "moskau"},
	"china":          {"china", "chinese", "chinesisch", "beijing"},
	"japan":          {"japan", "japanese", "japanisch", "tokyo"},
	"brasilien":      {"brasilien", "brazil", "südamerika", "buenos aires", "argentinien"},
	"afrika":         {"afrika", "african", "afrikanisch"},
	"asien":          {"asien", "asian", "asiatisch"},
	"global":         {"international", "global", "weltweit", "transnational"},
}

// Display forms of the canonical regions, as they appear on RVK labels.
var regionDisplay = map[string]string{
	"deutschland":    "Deutschland",
	"europa":         "Europa",
	"usa":            "USA",
	"großbritannien": "Großbritannien",
	"frankreich":     "Frankreich",
	"italien":        "Italien",
	"spanien":        "Spanien",
	"russland":       "Russland",
	"china":          "China",
	"japan":          "Japan",
	"brasilien":      "Brasilien",
	"afrika":         "Afrika",
	"asien":          "Asien",
}

// Continents and the global bucket keep their indicator lists but do not
// receive surface-form aliases: a city promotes to a country, never higher.
var nonCountryRegions = map[string]bool{
	"europa": true,
	"afrika": true,
	"asien":  true,
	"global": true,
}

// buildAliasIndex inverts the gazetteer into surface form -> canonical
// region, skipping continent buckets and surface forms that are canonical
// region names in their own right.
func buildAliasIndex() map[string]string {
	aliases := make(map[string]string)
	for region, indicators := range regionIndicators {
		if nonCountryRegions[region] {
			continue
		}
		for _, surface := range indicators {
			if surface != region {
				if _, isRegion := regionIndicators[surface]; isRegion && !nonCountryRegions[surface] {
					continue
				}
			}
			aliases[surface] = region
		}
	}
	return aliases
}
