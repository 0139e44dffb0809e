// Package reference holds the static lookup tables used to enrich reports
// for display. The tables carry no logic of their own.
package reference

var boroughs = map[string]string{
	"1": "Manhattan", "MN": "Manhattan", "MANHATTAN": "Manhattan",
	"2": "Bronx", "BX": "Bronx", "BRONX": "Bronx",
	"3": "Brooklyn", "BK": "Brooklyn", "BROOKLYN": "Brooklyn",
	"4": "Queens", "QN": "Queens", "QUEENS": "Queens",
	"5": "Staten Island", "SI": "Staten Island", "STATEN ISLAND": "Staten Island",
}

// BoroughName resolves a borough code or abbreviation. Unknown values are
// returned unchanged.
func BoroughName(code string) string {
	if name, ok := boroughs[code]; ok {
		return name
	}
	return code
}
