package domain

type Sector string

const (
	SectorFood          Sector = "food"
	SectorRetail        Sector = "retail"
	SectorServices      Sector = "services"
	SectorManufacturing Sector = "manufacturing"
	SectorDigital       Sector = "digital"
	SectorOther         Sector = "other"
)

// SectorBenchmark is the reference profit-margin band for an industry,
// plus a static sector-specific nudge surfaced as an info diagnostic.
type SectorBenchmark struct {
	Sector       Sector  `json:"sector"`
	MinMarginPct float64 `json:"minMarginPct"`
	MaxMarginPct float64 `json:"maxMarginPct"`
	Nudge        string  `json:"nudge"`
}

var sectorBenchmarks = map[Sector]SectorBenchmark{
	SectorFood: {
		Sector:       SectorFood,
		MinMarginPct: 5,
		MaxMarginPct: 15,
		Nudge:        "Food businesses live and die by waste control. Track spoilage weekly and fold it into your waste rate.",
	},
	SectorRetail: {
		Sector:       SectorRetail,
		MinMarginPct: 10,
		MaxMarginPct: 25,
		Nudge:        "Retail margins compress fast under discounting. Protect your floor price before running promotions.",
	},
	SectorServices: {
		Sector:       SectorServices,
		MinMarginPct: 15,
		MaxMarginPct: 40,
		Nudge:        "For services, your constraint is billable hours. Revisit capacity-based quantity estimates quarterly.",
	},
	SectorManufacturing: {
		Sector:       SectorManufacturing,
		MinMarginPct: 8,
		MaxMarginPct: 20,
		Nudge:        "Manufacturing fixed costs dominate at low volume. Watch the break-even gap before adding capacity.",
	},
	SectorDigital: {
		Sector:       SectorDigital,
		MinMarginPct: 30,
		MaxMarginPct: 70,
		Nudge:        "Digital products carry near-zero variable cost. Pricing should anchor on value, not cost-plus.",
	},
	SectorOther: {
		Sector:       SectorOther,
		MinMarginPct: 10,
		MaxMarginPct: 30,
		Nudge:        "Compare your margins against the closest industry you compete with, not a generic average.",
	},
}

// BenchmarkForSector returns the band for the sector, falling back to
// the generic band for unknown sectors.
func BenchmarkForSector(s Sector) SectorBenchmark {
	if b, ok := sectorBenchmarks[s]; ok {
		return b
	}
	return sectorBenchmarks[SectorOther]
}
