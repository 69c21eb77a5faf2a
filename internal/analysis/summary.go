package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jengzang/chokepoint-planner/internal/models"
)

// highRiskScore is the vulnerability score from which a chokepoint counts as high risk.
const highRiskScore = 7.0

// Summarize aggregates route lengths, chokepoint scores, POI categories and
// team assignment of a result. Empty collections leave their figures at zero.
func Summarize(res *models.AnalysisResult) *models.AnalysisSummary {
	sum := &models.AnalysisSummary{POIsByCategory: make(map[models.POICategory]int)}

	if len(res.Routes) > 0 {
		lengths := make([]float64, 0, len(res.Routes))
		for _, r := range res.Routes.Ordered() {
			lengths = append(lengths, r.LengthM)
		}
		sum.MeanRouteLengthM = stat.Mean(lengths, nil)
		sum.ShortestRouteLengthM = floats.Min(lengths)
		sum.LongestRouteLengthM = floats.Max(lengths)
	}

	if len(res.Chokepoints) > 0 {
		scores := make([]float64, 0, len(res.Chokepoints))
		for _, cp := range res.Chokepoints {
			scores = append(scores, cp.VulnerabilityScore)
			if cp.VulnerabilityScore >= highRiskScore {
				sum.HighRiskChokepoints++
			}
		}
		sum.MeanVulnerability = stat.Mean(scores, nil)
		sum.MaxVulnerability = floats.Max(scores)
	}

	for _, poi := range res.POIs {
		sum.POIsByCategory[poi.Type]++
	}

	for _, team := range res.Teams {
		if team.AssignedTo != nil {
			sum.AssignedTeams++
		}
	}

	return sum
}
