package reference

// FMRYear is the fiscal year of the fair market rent tables.
const FMRYear = 2025

// FMR holds monthly fair market rents by bedroom count.
type FMR struct {
	Studio  int
	OneBr   int
	TwoBr   int
	ThreeBr int
	FourBr  int
}

// NYCMetroFMR is the metro-wide HUD FMR used when no ZIP-level figure exists.
var NYCMetroFMR = FMR{Studio: 2387, OneBr: 2451, TwoBr: 2800, ThreeBr: 3547, FourBr: 3789}

// Small Area FMRs for ZIP codes where they differ materially from the metro
// average.
var smallAreaFMR = map[string]FMR{
	"10001": {3120, 3200, 3660, 4630, 4950},
	"10002": {2560, 2630, 3010, 3810, 4070},
	"10003": {3250, 3340, 3820, 4830, 5160},
	"10011": {3300, 3380, 3870, 4900, 5230},
	"10013": {3390, 3480, 3980, 5030, 5380},
	"10014": {3310, 3400, 3890, 4920, 5260},
	"10016": {3180, 3260, 3730, 4720, 5040},
	"10019": {3060, 3140, 3590, 4540, 4850},
	"10023": {3070, 3150, 3600, 4560, 4870},
	"10025": {2750, 2820, 3230, 4090, 4370},
	"10027": {2260, 2320, 2650, 3360, 3590},
	"10031": {2090, 2150, 2460, 3110, 3320},
	"10032": {2000, 2050, 2350, 2970, 3170},
	"10034": {1980, 2030, 2330, 2940, 3140},
	"10451": {1890, 1940, 2220, 2810, 3000},
	"10456": {1830, 1880, 2150, 2720, 2900},
	"10458": {1860, 1910, 2180, 2760, 2950},
	"10467": {1900, 1950, 2230, 2820, 3010},
	"11201": {3040, 3120, 3570, 4510, 4820},
	"11206": {2640, 2710, 3100, 3920, 4190},
	"11211": {2930, 3010, 3440, 4350, 4650},
	"11215": {2870, 2950, 3370, 4260, 4550},
	"11216": {2380, 2440, 2790, 3530, 3770},
	"11221": {2320, 2380, 2720, 3440, 3680},
	"11226": {2080, 2130, 2440, 3080, 3290},
	"11101": {2960, 3040, 3470, 4390, 4690},
	"11103": {2410, 2470, 2830, 3580, 3820},
	"11354": {2050, 2100, 2400, 3040, 3250},
	"11368": {2050, 2100, 2410, 3040, 3250},
	"11375": {2250, 2310, 2640, 3340, 3570},
	"10301": {1790, 1840, 2100, 2660, 2840},
}

// FMRForZip returns the Small Area FMR for zip when one is tabled.
func FMRForZip(zip string) (FMR, bool) {
	f, ok := smallAreaFMR[zip]
	return f, ok
}
