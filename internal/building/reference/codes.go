package reference

var buildingClasses = map[string]string{
	"A0": "One Family Dwelling - Cape Cod",
	"A1": "One Family Dwelling - Two Stories Detached",
	"A2": "One Family Dwelling - One Story",
	"A3": "One Family Dwelling - Large Suburban Residence",
	"A4": "One Family Dwelling - City Residence",
	"A5": "One Family Dwelling - Attached or Semi-Detached",
	"A9": "One Family Dwelling - Miscellaneous",
	"B1": "Two Family Dwelling - Brick",
	"B2": "Two Family Dwelling - Frame",
	"B3": "Two Family Dwelling - Converted From One Family",
	"B9": "Two Family Dwelling - Miscellaneous",
	"C0": "Walk-Up Apartment - Three Families",
	"C1": "Walk-Up Apartment - Over Six Families Without Stores",
	"C2": "Walk-Up Apartment - Five to Six Families",
	"C3": "Walk-Up Apartment - Four Families",
	"C4": "Walk-Up Apartment - Old Law Tenement",
	"C5": "Walk-Up Apartment - Converted Dwelling or Rooming House",
	"C6": "Walk-Up Apartment - Cooperative",
	"C7": "Walk-Up Apartment - Over Six Families With Stores",
	"C8": "Walk-Up Apartment - Co-op Conversion From Loft/Warehouse",
	"C9": "Walk-Up Apartment - Garden Apartments",
	"D0": "Elevator Apartment - Co-op Conversion From Loft/Warehouse",
	"D1": "Elevator Apartment - Semi-Fireproof Without Stores",
	"D2": "Elevator Apartment - Artists In Residence",
	"D3": "Elevator Apartment - Fireproof Without Stores",
	"D4": "Elevator Apartment - Cooperative",
	"D5": "Elevator Apartment - Converted",
	"D6": "Elevator Apartment - Fireproof With Stores",
	"D7": "Elevator Apartment - Semi-Fireproof With Stores",
	"D8": "Elevator Apartment - Luxury Type",
	"D9": "Elevator Apartment - Miscellaneous",
	"R1": "Condo - Residential Unit in 2-10 Unit Building",
	"R2": "Condo - Residential Unit in Walk-Up Building",
	"R3": "Condo - Residential Unit in 1-3 Story Building",
	"R4": "Condo - Residential Unit in Elevator Building",
	"R9": "Condo - Co-op Within a Condominium",
	"RM": "Condo - Mixed Residential and Commercial",
	"S0": "Primarily One Family With Two Stores or Offices",
	"S1": "Primarily One Family With One Store or Office",
	"S2": "Primarily Two Family With One Store or Office",
	"S3": "Primarily Three Family With One Store or Office",
	"S4": "Primarily Four Family With One Store or Office",
	"S5": "Primarily Five to Six Family With One Store or Office",
	"S9": "Single or Multiple Dwelling With Stores or Offices",
	"K1": "Store Building - One Story Retail",
	"K4": "Store Building - Predominant Retail With Other Uses",
	"O4": "Office Building - Tower Type",
	"O6": "Office Building - Office With Commercial",
}

var jobTypes = map[string]string{
	"A1": "Major Alteration (change of use/occupancy)",
	"A2": "Alteration (multiple work types)",
	"A3": "Minor Alteration (single work type)",
	"NB": "New Building",
	"DM": "Demolition",
	"SG": "Sign",
	"PA": "Place of Assembly",
	"SC": "Subdivision - Condo",
	"SI": "Subdivision - Improved",
	"SU": "Subdivision - Unimproved",
}

// BuildingClass describes a PLUTO building class code. Unknown codes are
// returned unchanged.
func BuildingClass(code string) string {
	if desc, ok := buildingClasses[code]; ok {
		return desc
	}
	return code
}

// JobType describes a DOB job type code. Unknown codes are returned
// unchanged.
func JobType(code string) string {
	if desc, ok := jobTypes[code]; ok {
		return desc
	}
	return code
}
