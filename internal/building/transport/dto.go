// Package transport defines the request and response shapes of the
// building API.
package transport

import (
	"time"

	"buildinghealth_backend/internal/building/domain"
)

// LookupRequest is the query of GET /api/building.
type LookupRequest struct {
	BBL string `form:"bbl" validate:"required,bbl"`
}

// HistoryRequest is the query of GET /api/building/history.
type HistoryRequest struct {
	BBL   string `form:"bbl" validate:"required,bbl"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// HistoryEntry is one recorded lookup.
type HistoryEntry struct {
	ID         string    `json:"id"`
	BBL        string    `json:"bbl"`
	Address    string    `json:"address"`
	Score      int       `json:"score"`
	Grade      string    `json:"grade"`
	Label      string    `json:"label"`
	RedFlags   int       `json:"redFlags"`
	LookedUpAt time.Time `json:"lookedUpAt"`
}

// HistoryResponse lists recent lookups of a building, newest first.
type HistoryResponse struct {
	BBL     string         `json:"bbl"`
	Lookups []HistoryEntry `json:"lookups"`
}

// Report is the full building health document.
type Report struct {
	Building           *Building              `json:"building"`
	Score              ScoreSummary           `json:"score"`
	CategoryScores     []domain.CategoryScore `json:"categoryScores"`
	Violations         Violations             `json:"violations"`
	Complaints         Complaints             `json:"complaints"`
	Litigations        Litigations            `json:"litigations"`
	Charges            Charges                `json:"charges"`
	Evictions          Evictions              `json:"evictions"`
	Sales              Sales                  `json:"sales"`
	Permits            Permits                `json:"permits"`
	Rodents            Rodents                `json:"rodents"`
	Bedbugs            Bedbugs                `json:"bedbugs"`
	Programs           Programs               `json:"programs"`
	Landlord           Landlord               `json:"landlord"`
	RedFlags           []domain.RedFlag       `json:"redFlags"`
	Timeline           []domain.TimelineEvent `json:"timeline"`
	Crime              Crime                  `json:"crime"`
	Flood              Flood                  `json:"flood"`
	NeighborhoodScore  int                    `json:"neighborhoodScore"`
	RentFairness       RentFairness           `json:"rentFairness"`
	Amenities          Amenities              `json:"amenities"`
	Safety             Safety                 `json:"safety"`
	Taxes              Taxes                  `json:"taxes"`
	DataSourcesCounted int                    `json:"dataSourcesCounted"`
	LastUpdated        string                 `json:"lastUpdated"`
	DataDisclaimer     string                 `json:"dataDisclaimer"`
}

// Building is the property profile from PLUTO plus program flags.
type Building struct {
	BBL                 string   `json:"bbl"`
	Address             string   `json:"address"`
	AddressDisplay      string   `json:"addressDisplay"`
	Borough             string   `json:"borough"`
	Neighborhood        string   `json:"neighborhood"`
	Zipcode             string   `json:"zipcode"`
	YearBuilt           *int     `json:"yearBuilt"`
	UnitsRes            int      `json:"unitsRes"`
	UnitsTotal          int      `json:"unitsTotal"`
	Floors              float64  `json:"floors"`
	BuildingClass       string   `json:"buildingClass"`
	BuildingClassDesc   string   `json:"buildingClassDesc"`
	OwnerName           string   `json:"ownerName"`
	OwnerType           string   `json:"ownerType"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	LotArea             *float64 `json:"lotArea"`
	BuildingArea        *float64 `json:"buildingArea"`
	ZoneDist1           string   `json:"zoneDist1"`
	AssessedValue       *float64 `json:"assessedValue"`
	YearAltered1        *int     `json:"yearAltered1"`
	YearAltered2        *int     `json:"yearAltered2"`
	Landmark            *string  `json:"landmark"`
	HistDist            *string  `json:"histDist"`
	IsRentStabilized    bool     `json:"isRentStabilized"`
	RentStabilizedUnits *string  `json:"rentStabilizedUnits"`
	RSLostUnits         *int     `json:"rsLostUnits"`
	IsSubsidized        bool     `json:"isSubsidized"`
	SubsidyPrograms     []string `json:"subsidyPrograms"`
	IsNycha             bool     `json:"isNycha"`
	NychaDev            *string  `json:"nychaDev"`
}

// ScoreSummary is the overall score with the counts that drove it.
type ScoreSummary struct {
	Overall   int            `json:"overall"`
	Grade     string         `json:"grade"`
	Label     string         `json:"label"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// ScoreBreakdown lists the headline risk counts.
type ScoreBreakdown struct {
	HPDViolations int `json:"hpdViolations"`
	DOBViolations int `json:"dobViolations"`
	ECBViolations int `json:"ecbViolations"`
	Complaints    int `json:"complaints"`
	Litigations   int `json:"litigations"`
	Evictions     int `json:"evictions"`
	Pests         int `json:"pests"`
}

// Violations groups HPD, DOB, ECB and DOB safety violations.
type Violations struct {
	HPD    HPDViolationStats `json:"hpd"`
	DOB    DOBViolationStats `json:"dob"`
	ECB    ECBStats          `json:"ecb"`
	Safety TotalOnly         `json:"safety"`
	Recent []ViolationItem   `json:"recent"`
}

// HPDViolationStats summarizes HPD violations.
type HPDViolationStats struct {
	Total      int                    `json:"total"`
	Open       int                    `json:"open"`
	ClassA     int                    `json:"classA"`
	ClassB     int                    `json:"classB"`
	ClassC     int                    `json:"classC"`
	ByYear     map[string]ClassByYear `json:"byYear"`
	ByCategory map[string]int         `json:"byCategory"`
}

// ClassByYear counts violations of one year by class.
type ClassByYear struct {
	Total int `json:"total"`
	A     int `json:"a"`
	B     int `json:"b"`
	C     int `json:"c"`
}

// DOBViolationStats summarizes DOB violations.
type DOBViolationStats struct {
	Total  int            `json:"total"`
	Open   int            `json:"open"`
	ByYear map[string]int `json:"byYear"`
}

// ECBStats summarizes ECB violations.
type ECBStats struct {
	Total         int     `json:"total"`
	Open          int     `json:"open"`
	PenaltiesOwed float64 `json:"penaltiesOwed"`
}

// TotalOnly is a section that only reports a count.
type TotalOnly struct {
	Total int `json:"total"`
}

// ViolationItem is one recent HPD or DOB violation.
type ViolationItem struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Date        string `json:"date"`
	Class       string `json:"class,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Unit        string `json:"unit,omitempty"`
	Story       string `json:"story,omitempty"`
	Category    string `json:"category"`
}

// Complaints groups HPD, DOB and 311 complaints.
type Complaints struct {
	HPD        HPDComplaintStats `json:"hpd"`
	DOB        DOBComplaintStats `json:"dob"`
	SR311      SR311Stats        `json:"sr311"`
	Recent     []ComplaintItem   `json:"recent"`
	ByCategory []domain.Share    `json:"byCategory"`
}

// HPDComplaintStats summarizes HPD complaints.
type HPDComplaintStats struct {
	Total        int            `json:"total"`
	RecentYear   int            `json:"recentYear"`
	HeatHotWater int            `json:"heatHotWater"`
	ByYear       map[string]int `json:"byYear"`
}

// DOBComplaintStats summarizes DOB complaints.
type DOBComplaintStats struct {
	Total      int `json:"total"`
	RecentYear int `json:"recentYear"`
}

// SR311Stats summarizes 311 service requests.
type SR311Stats struct {
	Total   int            `json:"total"`
	ByType  map[string]int `json:"byType"`
	Signals map[string]int `json:"signals"`
}

// ComplaintItem is one recent HPD, DOB or 311 complaint.
type ComplaintItem struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	Date       string `json:"date"`
	Type       string `json:"type"`
	Descriptor string `json:"descriptor,omitempty"`
	Status     string `json:"status"`
	Unit       string `json:"unit,omitempty"`
	Signal     string `json:"signal,omitempty"`
}

// Litigations summarizes HPD litigation cases.
type Litigations struct {
	Total          int              `json:"total"`
	Open           int              `json:"open"`
	TotalPenalties float64          `json:"totalPenalties"`
	ByType         map[string]int   `json:"byType"`
	Recent         []LitigationItem `json:"recent"`
}

// LitigationItem is one HPD litigation case.
type LitigationItem struct {
	ID           string   `json:"id"`
	CaseType     string   `json:"caseType"`
	CaseOpenDate string   `json:"caseOpenDate"`
	CaseStatus   string   `json:"caseStatus"`
	Penalty      *float64 `json:"penalty"`
	FindingDate  string   `json:"findingDate"`
}

// Charges summarizes HPD emergency repair charges.
type Charges struct {
	Total       int     `json:"total"`
	TotalAmount float64 `json:"totalAmount"`
}

// Evictions summarizes executed evictions and housing court filings.
type Evictions struct {
	Total      int            `json:"total"`
	Last3Years int            `json:"last3Years"`
	ByYear     map[string]int `json:"byYear"`
	Recent     []EvictionItem `json:"recent"`
	Filings    CourtFilings   `json:"filings"`
}

// EvictionItem is one executed eviction.
type EvictionItem struct {
	ID           string `json:"id"`
	ExecutedDate string `json:"executedDate"`
	Type         string `json:"type"`
	Marshal      string `json:"marshal"`
}

// CourtFilings summarizes housing court filings.
type CourtFilings struct {
	Total      int            `json:"total"`
	Last3Years int            `json:"last3Years"`
	ByYear     map[string]int `json:"byYear"`
	Recent     []CourtFiling  `json:"recent"`
}

// CourtFiling is one housing court case.
type CourtFiling struct {
	ID        string `json:"id"`
	FiledDate string `json:"filedDate"`
	CaseType  string `json:"caseType"`
	Status    string `json:"status"`
	CourtType string `json:"courtType"`
}

// Sales lists recorded sales with a positive price.
type Sales struct {
	Total          int        `json:"total"`
	Recent         []SaleItem `json:"recent"`
	LastSaleDate   *string    `json:"lastSaleDate,omitempty"`
	LastSaleAmount *float64   `json:"lastSaleAmount,omitempty"`
	DeedRecords    int        `json:"deedRecords"`
}

// SaleItem is one sale.
type SaleItem struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Permits summarizes DOB job filings.
type Permits struct {
	Total            int          `json:"total"`
	MajorAlterations int          `json:"majorAlterations"`
	RecentActivity   int          `json:"recentActivity"`
	PermitsIssued    int          `json:"permitsIssued"`
	Recent           []PermitItem `json:"recent"`
}

// PermitItem is one DOB job filing.
type PermitItem struct {
	JobNumber     string   `json:"jobNumber"`
	JobType       string   `json:"jobType"`
	JobTypeDesc   string   `json:"jobTypeDesc"`
	FilingDate    string   `json:"filingDate"`
	JobStatus     string   `json:"jobStatus"`
	JobStatusDesc string   `json:"jobStatusDesc"`
	WorkType      string   `json:"workType"`
	EstimatedCost *float64 `json:"estimatedCost"`
}

// Rodents summarizes rodent inspections.
type Rodents struct {
	TotalInspections int           `json:"totalInspections"`
	Failed           int           `json:"failed"`
	Passed           int           `json:"passed"`
	Recent           []RodentCheck `json:"recent"`
}

// RodentCheck is one rodent inspection.
type RodentCheck struct {
	Date   string `json:"date"`
	Result string `json:"result"`
	Type   string `json:"type"`
}

// Bedbugs summarizes bedbug filings.
type Bedbugs struct {
	Reports        int    `json:"reports"`
	LastReportDate string `json:"lastReportDate,omitempty"`
}

// Programs lists enforcement and subsidy program membership.
type Programs struct {
	AEP              bool `json:"aep"`
	CONH             bool `json:"conh"`
	SpeculationWatch bool `json:"speculationWatch"`
	Subsidized       bool `json:"subsidized"`
	NYCHA            bool `json:"nycha"`
	VacateOrder      bool `json:"vacateOrder"`
}

// Landlord is the registered owner with contacts and portfolio.
type Landlord struct {
	Name                string          `json:"name"`
	Type                string          `json:"type"`
	RegistrationID      string          `json:"registrationId"`
	RegistrationDate    string          `json:"registrationDate"`
	RegistrationExpires string          `json:"registrationExpires"`
	ManagementCompany   string          `json:"managementCompany"`
	Owners              []Contact       `json:"owners"`
	Agents              []Contact       `json:"agents"`
	SiteManagers        []Contact       `json:"siteManagers"`
	AllContacts         []Contact       `json:"allContacts"`
	PortfolioSize       int             `json:"portfolioSize"`
	Portfolio           []PortfolioItem `json:"portfolio"`
}

// Contact is one HPD registration contact.
type Contact struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Corporation string `json:"corporation"`
	Address     string `json:"address"`
}

// PortfolioItem is another building under the same registration.
type PortfolioItem struct {
	BBL     string `json:"bbl"`
	Address string `json:"address"`
	Borough string `json:"borough"`
	Zipcode string `json:"zipcode"`
}

// Crime summarizes NYPD complaints nearby in the past year.
type Crime struct {
	Total   int         `json:"total"`
	Violent int         `json:"violent"`
	Score   int         `json:"score"`
	Level   string      `json:"level"`
	ByType  []TypeCount `json:"byType"`
}

// TypeCount is a labelled count.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Flood reports flood and hurricane evacuation zone membership.
type Flood struct {
	InFloodZone     bool    `json:"inFloodZone"`
	FloodZoneType   *string `json:"floodZoneType"`
	InHurricaneZone bool    `json:"inHurricaneZone"`
	HurricaneZone   *string `json:"hurricaneZone"`
}

// RentFairness compares against HUD fair market rents.
type RentFairness struct {
	HudFMR       HudFMR `json:"hudFMR"`
	Neighborhood string `json:"neighborhood"`
	Note         string `json:"note"`
	Tip          string `json:"tip"`
}

// HudFMR is a fair market rent table.
type HudFMR struct {
	Studio     int    `json:"studio"`
	OneBr      int    `json:"oneBr"`
	TwoBr      int    `json:"twoBr"`
	ThreeBr    int    `json:"threeBr"`
	FourBr     int    `json:"fourBr"`
	Year       int    `json:"year"`
	Source     string `json:"source"`
	IsZipLevel bool   `json:"isZipLevel"`
}

// Amenities counts points of interest around the building.
type Amenities struct {
	SubwayEntrances      int            `json:"subwayEntrances"`
	NearestSubwayMeters  *int           `json:"nearestSubwayMeters"`
	NearestSubwayStation string         `json:"nearestSubwayStation,omitempty"`
	CitiBikeStations     int            `json:"citiBikeStations"`
	Schools              int            `json:"schools"`
	Parks                int            `json:"parks"`
	StreetTrees          int            `json:"streetTrees"`
	SidewalkCafes        int            `json:"sidewalkCafes"`
	WifiHotspots         int            `json:"wifiHotspots"`
	Restaurants          int            `json:"restaurants"`
	RestaurantGrades     map[string]int `json:"restaurantGrades"`
}

// Safety reports shootings and traffic crashes nearby.
type Safety struct {
	Shootings3Y   int `json:"shootings3y"`
	Crashes2Y     int `json:"crashes2y"`
	CrashInjuries int `json:"crashInjuries"`
	CrashDeaths   int `json:"crashDeaths"`
}

// Taxes reports DOF exemptions, lien sale listings and cooling towers.
type Taxes struct {
	Exemptions      int      `json:"exemptions"`
	ExemptionCodes  []string `json:"exemptionCodes"`
	TaxLienListings int      `json:"taxLienListings"`
	CoolingTowers   int      `json:"coolingTowers"`
}
