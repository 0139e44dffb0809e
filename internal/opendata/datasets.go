package opendata

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Semantic dataset names. The provider ids live in datasets.yaml.
const (
	Pluto                 = "pluto"
	HPDViolations         = "hpdViolations"
	HPDComplaints         = "hpdComplaints"
	HPDRegistrations      = "hpdRegistrations"
	HPDContacts           = "hpdContacts"
	HPDLitigations        = "hpdLitigations"
	HPDCharges            = "hpdCharges"
	HPDVacateOrders       = "hpdVacateOrders"
	HPDAEP                = "hpdAEP"
	HPDCONH               = "hpdCONH"
	DOBViolations         = "dobViolations"
	DOBComplaints         = "dobComplaints"
	DOBJobFilings         = "dobJobFilings"
	DOBPermitsIssued      = "dobPermitsIssued"
	DOBSafety             = "dobSafety"
	DOBEcb                = "dobEcb"
	DOBVacates            = "dobVacates"
	ACRISLegals           = "acrisLegals"
	DOFRollingSales       = "dofRollingSales"
	Evictions             = "evictions"
	HousingCourt          = "housingCourt"
	Rodents               = "rodents"
	Bedbugs               = "bedbugs"
	SpeculationWatch      = "speculationWatch"
	RentStabilized        = "rentStabilized"
	SubsidizedHousing     = "subsidizedHousing"
	NYCHA                 = "nycha"
	SR311                 = "sr311"
	NYPDComplaints        = "nypdComplaints"
	FloodZones            = "floodZones"
	HurricaneZones        = "hurricaneZones"
	SubwayEntrances       = "subwayEntrances"
	CitiBikeStations      = "citiBikeStations"
	SchoolLocations       = "schoolLocations"
	Parks                 = "parks"
	StreetTrees           = "streetTrees"
	SidewalkCafes         = "sidewalkCafes"
	WifiHotspots          = "wifiHotspots"
	NYPDShooting          = "nypdShooting"
	MotorVehicleCrashes   = "motorVehicleCrashes"
	CoolingTowers         = "coolingTowers"
	DOFExemptions         = "dofExemptions"
	TaxLienSales          = "taxLienSales"
	RestaurantInspections = "restaurantInspections"
)

//go:embed datasets.yaml
var defaultCatalog []byte

type catalogFile struct {
	Datasets map[string]string `yaml:"datasets"`
}

// Catalog maps semantic dataset names to provider resource ids.
type Catalog map[string]string

// LoadCatalog parses the embedded catalog and applies entries from
// overridePath on top of it when the path is set.
func LoadCatalog(overridePath string) (Catalog, error) {
	base, err := parseCatalog(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset catalog: %w", err)
	}
	if overridePath == "" {
		return base, nil
	}

	raw, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("read dataset catalog %s: %w", overridePath, err)
	}
	override, err := parseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("dataset catalog %s: %w", overridePath, err)
	}
	for name, id := range override {
		base[name] = id
	}
	return base, nil
}

func parseCatalog(raw []byte) (Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	cat := make(Catalog, len(file.Datasets))
	for name, id := range file.Datasets {
		if id == "" {
			return nil, fmt.Errorf("dataset %q has no id", name)
		}
		cat[name] = id
	}
	return cat, nil
}

// ID returns the provider id for a dataset name.
func (c Catalog) ID(name string) (string, bool) {
	id, ok := c[name]
	return id, ok
}
