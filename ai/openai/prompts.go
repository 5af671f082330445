package openai

import (
	"fmt"
	"strings"

	"github.com/fachref/rvkc/core"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "concepts": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "term": {
            "type": "string"
          },
          "kind": {
            "type": "string",
            "enum": ["keyword", "discipline", "place"]
          },
          "salience": {
            "type": "integer",
            "minimum": 1,
            "maximum": 10
          }
        },
        "required": ["term", "kind", "salience"],
        "additionalProperties": false
      }
    }
  },
  "required": ["concepts"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `Du bist ein Bibliothekar und analysierst bibliografische Datensätze für die
Klassifikation nach der Regensburger Verbundklassifikation (RVK). Extrahiere
die wichtigsten Konzepte aus dem gegebenen Datensatz und gib sie als JSON
zurück.

Output ONLY valid JSON which complies with the schema given below. Do not
include any preamble, explanation, greeting, or acknowledgment. Start your
response directly with the opening brace { and end with the closing brace }.
Your output must exactly follow this schema:

%s

Regeln:
- "term" ist das Konzept in deutscher Katalogisierungssprache, möglichst als
  Substantiv im Singular ("Migration", nicht "Migrationen").
- "kind" ist genau eines von: "keyword" (Sachbegriff), "discipline"
  (Fachgebiet, z. B. Soziologie, Chemie, Geschichte), "place" (Ort, Region
  oder Land).
- "salience" ist eine ganze Zahl von 1 (Randthema) bis 10 (zentrales Thema).
- Extrahiere nur Konzepte, die der Datensatz explizit nennt oder klar
  impliziert. Erfinde nichts.
- Das Hauptthema des Titels erhält die höchste Salienz.
- Wenn keine Konzepte erkennbar sind, gib "concepts": [] zurück.
- Das JSON muss fehlerfrei parsen: keine nachgestellten Kommata, keine
  zusätzlichen Schlüssel, kein Text außerhalb des Objekts.

Beispiel:
Input:
Titel: Migration und Integration in Chemnitz : eine stadtsoziologische Studie
Schlagwörter: Migration; Integration; Stadtforschung
Output:
{
  "concepts": [
    {"term":"Migration","kind":"keyword","salience":9},
    {"term":"Integration","kind":"keyword","salience":8},
    {"term":"Stadtforschung","kind":"keyword","salience":7},
    {"term":"Soziologie","kind":"discipline","salience":7},
    {"term":"Chemnitz","kind":"place","salience":6}
  ]
}

Beispiel (Titel ohne Schlagwörter):
Input:
Titel: Grundlagen der organischen Chemie
Output:
{
  "concepts": [
    {"term":"Organische Chemie","kind":"keyword","salience":9},
    {"term":"Chemie","kind":"discipline","salience":8}
  ]
}`

// buildSystemPrompt creates the system prompt with the schema embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(extractionPromptTemplate, extractionResponseSchema)
}

// buildRecordPrompt renders a record as the labeled block the prompt's
// examples use. Empty fields are omitted.
func buildRecordPrompt(rec *core.Record) string {
	var b strings.Builder
	writeField := func(label, value string) {
		if value = scrubString(value); value != "" {
			b.WriteString(label)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteString("\n")
		}
	}

	writeField("Titel", rec.Title)
	writeField("Autoren", strings.Join(rec.Authors, "; "))
	writeField("Jahr", rec.Year)
	writeField("Verlag", rec.Publisher)
	writeField("Schlagwörter", strings.Join(rec.Subjects, "; "))
	writeField("Abstract", rec.Abstract)

	return strings.TrimSpace(b.String())
}
