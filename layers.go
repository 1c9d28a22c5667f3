package main

// FieldConfig names the fixed measure and geo-coordinate fields for the
// session. Flows need all four coordinates valid; markers and volumes only
// the destination pair.
type FieldConfig struct {
	Measure   string
	OriginLat string
	OriginLon string
	DestLat   string
	DestLon   string
}

func defaultFieldConfig() FieldConfig {
	return FieldConfig{
		Measure:   "Volume",
		OriginLat: "OriginLat",
		OriginLon: "OriginLon",
		DestLat:   "DestLat",
		DestLon:   "DestLon",
	}
}

type LayerKind int

const (
	KindFlow LayerKind = iota
	KindMarker
	KindVolume
)

func (k LayerKind) String() string {
	switch k {
	case KindFlow:
		return "flow"
	case KindMarker:
		return "marker"
	case KindVolume:
		return "volume"
	default:
		return "unknown"
	}
}

var allKinds = []LayerKind{KindFlow, KindMarker, KindVolume}

type Position struct {
	Lat float64
	Lon float64
}

// Layer is one immutable render-subset descriptor handed to the rendering
// surface: a record sequence plus the accessors the surface calls
// per-record. Rebuilt wholesale on every pipeline recompute; nobody holds
// onto a previous cycle's layer.
type Layer struct {
	Kind    LayerKind
	Records []Record

	// Position accessors. Origin is only set for flows.
	Origin func(Record) Position
	Target func(Record) Position

	// Size accessors; which one applies depends on the kind.
	Width       func(Record) float64 // flows, pixels
	Radius      func(Record) float64 // markers, meters
	PixelRadius func(Record) float64 // markers, pixels, per-pass domain
	Elevation   func(Record) float64 // volumes, meters

	Color func(Record) RGBA

	// Pointer interaction callbacks, wired into selection state.
	OnHover func(Record, int, int)
	OnClick func(Record, int, int)
}

func coordOK(rec Record, latField, lonField string) (Position, bool) {
	lat, ok := rec.NumOK(latField)
	if !ok {
		return Position{}, false
	}
	lon, ok := rec.NumOK(lonField)
	if !ok {
		return Position{}, false
	}
	return Position{Lat: lat, Lon: lon}, true
}

// partitionRecords splits the filtered records into the flow subset (both
// endpoints valid) and the marker subset (destination valid). Volumes
// share the marker subset.
func partitionRecords(records []Record, fields FieldConfig) (flows, markers []Record) {
	for _, rec := range records {
		if _, ok := coordOK(rec, fields.DestLat, fields.DestLon); !ok {
			continue
		}
		markers = append(markers, rec)
		if _, ok := coordOK(rec, fields.OriginLat, fields.OriginLon); ok {
			flows = append(flows, rec)
		}
	}
	return flows, markers
}

// buildLayers constructs the three descriptors. A kind whose visibility
// toggle is off still gets a descriptor, just with an empty record
// sequence; the subset itself is never altered.
func buildLayers(filtered []Record, fields FieldConfig, kindOn map[LayerKind]bool, sel *selectionState) []Layer {
	flows, markers := partitionRecords(filtered, fields)

	values := make([]float64, len(filtered))
	for i, rec := range filtered {
		values[i] = rec.Num(fields.Measure)
	}
	scales := newScaleSet(values)

	markerValues := make([]float64, len(markers))
	for i, rec := range markers {
		markerValues[i] = rec.Num(fields.Measure)
	}
	pxRadius := pixelRadiusScale(markerValues)

	measure := func(rec Record) float64 { return rec.Num(fields.Measure) }
	origin := func(rec Record) Position {
		p, _ := coordOK(rec, fields.OriginLat, fields.OriginLon)
		return p
	}
	target := func(rec Record) Position {
		p, _ := coordOK(rec, fields.DestLat, fields.DestLon)
		return p
	}
	color := func(rec Record) RGBA { return scales.Color(measure(rec)) }

	onHover := func(rec Record, x, y int, k LayerKind) {
		// a pin always wins over hover
		sel.HoverEnter(rec, x, y, k)
	}
	onClick := func(rec Record, x, y int, k LayerKind) {
		sel.ClickDrawable(rec, x, y, k)
	}

	gate := func(k LayerKind, recs []Record) []Record {
		if on, ok := kindOn[k]; ok && !on {
			return nil
		}
		return recs
	}

	mk := func(k LayerKind, recs []Record) Layer {
		l := Layer{
			Kind:    k,
			Records: gate(k, recs),
			Target:  target,
			Color:   color,
			OnHover: func(rec Record, x, y int) { onHover(rec, x, y, k) },
			OnClick: func(rec Record, x, y int) { onClick(rec, x, y, k) },
		}
		switch k {
		case KindFlow:
			l.Origin = origin
			l.Width = func(rec Record) float64 { return scales.lineWidth.Apply(measure(rec)) }
		case KindMarker:
			l.Radius = func(rec Record) float64 { return scales.geoRadius.Apply(measure(rec)) }
			l.PixelRadius = func(rec Record) float64 { return pxRadius.Apply(measure(rec)) }
		case KindVolume:
			l.Elevation = func(rec Record) float64 { return scales.elevation.Apply(measure(rec)) }
		}
		return l
	}

	return []Layer{
		mk(KindFlow, flows),
		mk(KindMarker, markers),
		mk(KindVolume, markers),
	}
}

// rebuildLayers replaces the model's layer set and pushes it at the
// canvas. Always a full rebuild and hand-off, never an in-place edit.
func (m *model) rebuildLayers() {
	m.layers = buildLayers(m.data.filtered, m.data.fields, m.data.kindOn, &m.sel)
	m.canvas.SetLayers(m.layers)
}
