package roadgraph

import (
	"strings"

	"github.com/paulmach/osm"
)

// RoadClass is the normalized traffic function of a road segment.
type RoadClass string

// RoadClass values. Anything not listed normalizes to RoadClassOther.
const (
	RoadClassMotorway     RoadClass = "motorway"
	RoadClassTrunk        RoadClass = "trunk"
	RoadClassPrimary      RoadClass = "primary"
	RoadClassSecondary    RoadClass = "secondary"
	RoadClassTertiary     RoadClass = "tertiary"
	RoadClassResidential  RoadClass = "residential"
	RoadClassLivingStreet RoadClass = "living_street"
	RoadClassService      RoadClass = "service"
	RoadClassUnclassified RoadClass = "unclassified"
	RoadClassOther        RoadClass = "other"
)

var knownClasses = map[string]RoadClass{
	"motorway":      RoadClassMotorway,
	"trunk":         RoadClassTrunk,
	"primary":       RoadClassPrimary,
	"secondary":     RoadClassSecondary,
	"tertiary":      RoadClassTertiary,
	"residential":   RoadClassResidential,
	"living_street": RoadClassLivingStreet,
	"service":       RoadClassService,
	"unclassified":  RoadClassUnclassified,
}

// ParseRoadClass maps a raw highway value onto the closed RoadClass set.
func ParseRoadClass(raw string) RoadClass {
	if c, ok := knownClasses[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c
	}
	return RoadClassOther
}

// EdgeClass is the classification of an edge's raw attributes.
type EdgeClass struct {
	Road   RoadClass
	Tunnel bool
	Bridge bool
}

var (
	tunnelValues = map[string]bool{"yes": true, "building_passage": true}
	bridgeValues = map[string]bool{"yes": true, "viaduct": true}
)

// Classify derives the road class and hazard flags from raw OSM tags.
// The highway class comes from the first value of a multi-valued tag; tunnel and
// bridge flags are set when any value matches.
func Classify(tags osm.Tags) EdgeClass {
	class := EdgeClass{Road: RoadClassOther}
	if hw := TagValues(tags.Find("highway")); len(hw) > 0 {
		class.Road = ParseRoadClass(hw[0])
	}
	class.Tunnel = anyValue(tags.Find("tunnel"), tunnelValues)
	class.Bridge = anyValue(tags.Find("bridge"), bridgeValues)
	return class
}

// TagValues splits a raw tag into its values. Both the OSM "a;b" encoding and
// the list encoding "['a', 'b']" written by graph exporters are accepted.
func TagValues(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	sep := ";"
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		raw = raw[1 : len(raw)-1]
		sep = ","
	}

	var values []string
	for _, part := range strings.Split(raw, sep) {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}

func anyValue(raw string, allowed map[string]bool) bool {
	for _, v := range TagValues(raw) {
		if allowed[strings.ToLower(v)] {
			return true
		}
	}
	return false
}
