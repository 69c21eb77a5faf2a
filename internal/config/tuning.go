package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Tuning holds every hand-tuned constant of the analysis pipeline. Road class
// keys are the normalized class names (motorway, trunk, primary, ...).
type Tuning struct {
	Routing    RoutingTuning    `json:"routing"`
	Speeds     SpeedTuning      `json:"speeds"`
	Chokepoint ChokepointTuning `json:"chokepoint"`
	Threat     ThreatTuning     `json:"threat"`
	Clustering ClusterTuning    `json:"clustering"`
}

// RoutingTuning configures the logical and safest edge-cost functions.
type RoutingTuning struct {
	LogicalClassMultipliers map[string]float64 `json:"logical_class_multipliers"`
	LogicalReusePenalty     float64            `json:"logical_reuse_penalty"`

	SafestClassMultipliers     map[string]float64 `json:"safest_class_multipliers"`
	SafestTunnelPenalty        float64            `json:"safest_tunnel_penalty"`
	SafestBridgePenalty        float64            `json:"safest_bridge_penalty"`
	ComplexIntersectionDegree  int                `json:"complex_intersection_degree"`
	ComplexIntersectionPenalty float64            `json:"complex_intersection_penalty"`
	SafestReusePenalty         float64            `json:"safest_reuse_penalty"`
}

// SpeedTuning is the base travel speed per road class, in km/h.
type SpeedTuning struct {
	BaseKmh    map[string]float64 `json:"base_kmh"`
	DefaultKmh float64            `json:"default_kmh"`
}

// Kmh returns the base speed for a road class.
func (s SpeedTuning) Kmh(class string) float64 {
	if v, ok := s.BaseKmh[class]; ok {
		return v
	}
	return s.DefaultKmh
}

// ChokepointTuning configures vulnerability scoring.
type ChokepointTuning struct {
	BaseScore         float64  `json:"base_score"`
	AllRoutesBonus    float64  `json:"all_routes_bonus"`
	SharedBonus       float64  `json:"shared_bonus"`
	IntersectionBonus float64  `json:"intersection_bonus"`
	TunnelBonus       float64  `json:"tunnel_bonus"`
	BridgeBonus       float64  `json:"bridge_bonus"`
	DenseBonus        float64  `json:"dense_bonus"`
	DenseClasses      []string `json:"dense_classes"`
	MinScore          float64  `json:"min_score"`
	MaxScore          float64  `json:"max_score"`
	ClusterRadiusM    float64  `json:"cluster_radius_m"`
	ClusterAbove      int      `json:"cluster_above"` // clustering is skipped for this many or fewer
}

// ThreatTuning configures POI generation.
type ThreatTuning struct {
	TunnelSpeedFactor      float64 `json:"tunnel_speed_factor"`
	BridgeSpeedFactor      float64 `json:"bridge_speed_factor"`
	ResidentialSpeedFactor float64 `json:"residential_speed_factor"`

	Isolation        map[string]float64 `json:"isolation"`
	DefaultIsolation float64            `json:"default_isolation"`
	Density          map[string]float64 `json:"density"`
	DefaultDensity   float64            `json:"default_density"`

	MaxThreat         float64  `json:"max_threat"`
	AmbushMinThreat   float64  `json:"ambush_min_threat"`
	AmbushMaxPerRoute int      `json:"ambush_max_per_route"`
	AmbushClasses     []string `json:"ambush_classes"`

	HighwayScore            map[string]float64 `json:"highway_score"`
	DefaultHighwayScore     float64            `json:"default_highway_score"`
	SurveillanceClasses     []string           `json:"surveillance_classes"`
	SurveillanceMinPriority float64            `json:"surveillance_min_priority"`
	SurveillanceMaxPerRoute int                `json:"surveillance_max_per_route"`

	ChokepointMinScore   float64 `json:"chokepoint_min_score"`
	ChokepointProximityM float64 `json:"chokepoint_proximity_m"`
}

// CategoryCluster is the per-category POI clustering rule.
type CategoryCluster struct {
	KeepTop int     `json:"keep_top"`
	RadiusM float64 `json:"radius_m"`
}

// ClusterTuning maps POI category names to their clustering rule.
type ClusterTuning struct {
	Categories map[string]CategoryCluster `json:"categories"`
	Default    CategoryCluster            `json:"default"`
}

// For returns the clustering rule for a category.
func (c ClusterTuning) For(category string) CategoryCluster {
	if rule, ok := c.Categories[category]; ok {
		return rule
	}
	return c.Default
}

// DefaultTuning returns the built-in constants.
func DefaultTuning() *Tuning {
	return &Tuning{
		Routing: RoutingTuning{
			LogicalClassMultipliers: map[string]float64{
				"motorway":      0.6,
				"trunk":         0.6,
				"primary":       0.75,
				"secondary":     0.85,
				"tertiary":      0.95,
				"residential":   1.3,
				"living_street": 1.3,
				"service":       1.5,
			},
			LogicalReusePenalty: 4.0,
			SafestClassMultipliers: map[string]float64{
				"motorway":      0.8,
				"trunk":         0.8,
				"primary":       0.9,
				"secondary":     1.0,
				"tertiary":      1.2,
				"residential":   2.0,
				"living_street": 2.0,
				"service":       3.0,
			},
			SafestTunnelPenalty:        5.0,
			SafestBridgePenalty:        2.5,
			ComplexIntersectionDegree:  3,
			ComplexIntersectionPenalty: 1.3,
			SafestReusePenalty:         3.0,
		},
		Speeds: SpeedTuning{
			BaseKmh: map[string]float64{
				"motorway":      80,
				"trunk":         70,
				"primary":       60,
				"secondary":     50,
				"tertiary":      40,
				"residential":   20,
				"living_street": 15,
			},
			DefaultKmh: 30,
		},
		Chokepoint: ChokepointTuning{
			BaseScore:         3.0,
			AllRoutesBonus:    3.0,
			SharedBonus:       2.0,
			IntersectionBonus: 2.0,
			TunnelBonus:       2.0,
			BridgeBonus:       2.0,
			DenseBonus:        1.0,
			DenseClasses:      []string{"residential", "living_street", "tertiary", "secondary"},
			MinScore:          1.0,
			MaxScore:          10.0,
			ClusterRadiusM:    100,
			ClusterAbove:      10,
		},
		Threat: ThreatTuning{
			TunnelSpeedFactor:      0.7,
			BridgeSpeedFactor:      0.8,
			ResidentialSpeedFactor: 0.6,
			Isolation: map[string]float64{
				"motorway":  2.0,
				"trunk":     2.0,
				"primary":   2.0,
				"secondary": 4.0,
				"tertiary":  4.0,
			},
			DefaultIsolation: 6.0,
			Density: map[string]float64{
				"motorway":      2.0,
				"primary":       4.0,
				"secondary":     4.0,
				"tertiary":      7.0,
				"residential":   7.0,
				"living_street": 7.0,
			},
			DefaultDensity:    5.0,
			MaxThreat:         10.0,
			AmbushMinThreat:   2.5,
			AmbushMaxPerRoute: 8,
			AmbushClasses:     []string{"residential", "living_street", "tertiary"},
			HighwayScore: map[string]float64{
				"motorway":  4.0,
				"trunk":     3.5,
				"primary":   3.0,
				"secondary": 2.5,
				"tertiary":  2.0,
			},
			DefaultHighwayScore:     1.5,
			SurveillanceClasses:     []string{"primary", "secondary", "tertiary"},
			SurveillanceMinPriority: 2.0,
			SurveillanceMaxPerRoute: 10,
			ChokepointMinScore:      6.0,
			ChokepointProximityM:    500,
		},
		Clustering: ClusterTuning{
			Categories: map[string]CategoryCluster{
				"ambush_location":         {KeepTop: 6, RadiusM: 200},
				"surveillance_point":      {KeepTop: 8, RadiusM: 300},
				"enemy_observation_point": {KeepTop: 4, RadiusM: 150},
				"enemy_firing_point":      {KeepTop: 4, RadiusM: 150},
			},
			Default: CategoryCluster{KeepTop: 5, RadiusM: 150},
		},
	}
}

// LoadTuning overlays a JSON file onto DefaultTuning. Fields omitted from the
// file keep their defaults, map entries are merged by key and lists replace the
// default list.
func LoadTuning(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat tuning file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("tuning file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}

	t := DefaultTuning()
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning JSON: %w", err)
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}

	return t, nil
}

// Validate checks that the constants are usable.
func (t *Tuning) Validate() error {
	for name, table := range map[string]map[string]float64{
		"routing.logical_class_multipliers": t.Routing.LogicalClassMultipliers,
		"routing.safest_class_multipliers":  t.Routing.SafestClassMultipliers,
		"speeds.base_kmh":                   t.Speeds.BaseKmh,
	} {
		for class, v := range table {
			if v <= 0 {
				return fmt.Errorf("%s[%s] must be positive, got %f", name, class, v)
			}
		}
	}

	for name, v := range map[string]float64{
		"routing.logical_reuse_penalty":        t.Routing.LogicalReusePenalty,
		"routing.safest_tunnel_penalty":        t.Routing.SafestTunnelPenalty,
		"routing.safest_bridge_penalty":        t.Routing.SafestBridgePenalty,
		"routing.complex_intersection_penalty": t.Routing.ComplexIntersectionPenalty,
		"routing.safest_reuse_penalty":         t.Routing.SafestReusePenalty,
		"speeds.default_kmh":                   t.Speeds.DefaultKmh,
		"threat.tunnel_speed_factor":           t.Threat.TunnelSpeedFactor,
		"threat.bridge_speed_factor":           t.Threat.BridgeSpeedFactor,
		"threat.residential_speed_factor":      t.Threat.ResidentialSpeedFactor,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %f", name, v)
		}
	}

	if t.Chokepoint.MinScore > t.Chokepoint.MaxScore {
		return fmt.Errorf("chokepoint.min_score %f exceeds max_score %f", t.Chokepoint.MinScore, t.Chokepoint.MaxScore)
	}
	if t.Chokepoint.ClusterRadiusM < 0 {
		return fmt.Errorf("chokepoint.cluster_radius_m must be non-negative, got %f", t.Chokepoint.ClusterRadiusM)
	}

	if t.Threat.AmbushMaxPerRoute < 0 || t.Threat.SurveillanceMaxPerRoute < 0 {
		return fmt.Errorf("threat per-route caps must be non-negative")
	}

	rules := map[string]CategoryCluster{"default": t.Clustering.Default}
	for category, rule := range t.Clustering.Categories {
		rules[category] = rule
	}
	for category, rule := range rules {
		if rule.KeepTop < 0 {
			return fmt.Errorf("clustering %s keep_top must be non-negative, got %d", category, rule.KeepTop)
		}
		if rule.RadiusM < 0 {
			return fmt.Errorf("clustering %s radius_m must be non-negative, got %f", category, rule.RadiusM)
		}
	}

	return nil
}
