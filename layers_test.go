package main

import (
	"math"
	"testing"
)

func layerRecords() []Record {
	return []Record{
		// full coordinates: flow + marker + volume
		{"Code": "A", "Volume": float64(100), "OriginLat": float64(10), "OriginLon": float64(20), "DestLat": float64(30), "DestLon": float64(40)},
		// destination only: marker + volume, no flow
		{"Code": "B", "Volume": float64(50), "DestLat": float64(31), "DestLon": float64(41)},
		// no valid destination: drawn by nothing
		{"Code": "C", "Volume": float64(25), "DestLat": "somewhere"},
		// non-finite destination is as invalid as a missing one
		{"Code": "D", "Volume": float64(10), "DestLat": math.NaN(), "DestLon": float64(12)},
	}
}

func allKindsOn() map[LayerKind]bool {
	on := make(map[LayerKind]bool, len(allKinds))
	for _, k := range allKinds {
		on[k] = true
	}
	return on
}

func layerByKind(t *testing.T, layers []Layer, k LayerKind) Layer {
	t.Helper()
	for _, l := range layers {
		if l.Kind == k {
			return l
		}
	}
	t.Fatalf("no %v layer built", k)
	return Layer{}
}

func TestPartitionRecords(t *testing.T) {
	flows, markers := partitionRecords(layerRecords(), defaultFieldConfig())
	if len(flows) != 1 || flows[0].Str("Code") != "A" {
		t.Fatalf("flows = %v, want only record A", flows)
	}
	if len(markers) != 2 {
		t.Fatalf("markers = %v, want A and B", markers)
	}
}

func TestBuildLayersSubsets(t *testing.T) {
	var sel selectionState
	layers := buildLayers(layerRecords(), defaultFieldConfig(), allKindsOn(), &sel)

	if len(layers) != 3 {
		t.Fatalf("got %d layers, want one per kind", len(layers))
	}
	if n := len(layerByKind(t, layers, KindFlow).Records); n != 1 {
		t.Errorf("flow subset has %d records, want 1", n)
	}
	if n := len(layerByKind(t, layers, KindMarker).Records); n != 2 {
		t.Errorf("marker subset has %d records, want 2", n)
	}
	// volumes share the marker subset
	if n := len(layerByKind(t, layers, KindVolume).Records); n != 2 {
		t.Errorf("volume subset has %d records, want 2", n)
	}
}

func TestBuildLayersKindGating(t *testing.T) {
	var sel selectionState
	on := allKindsOn()
	on[KindFlow] = false
	on[KindVolume] = false

	layers := buildLayers(layerRecords(), defaultFieldConfig(), on, &sel)

	if n := len(layerByKind(t, layers, KindFlow).Records); n != 0 {
		t.Errorf("hidden flow layer still carries %d records", n)
	}
	if n := len(layerByKind(t, layers, KindVolume).Records); n != 0 {
		t.Errorf("hidden volume layer still carries %d records", n)
	}
	if n := len(layerByKind(t, layers, KindMarker).Records); n != 2 {
		t.Errorf("marker subset changed under unrelated toggles, got %d records", n)
	}
}

func TestLayerAccessors(t *testing.T) {
	var sel selectionState
	layers := buildLayers(layerRecords(), defaultFieldConfig(), allKindsOn(), &sel)

	flow := layerByKind(t, layers, KindFlow)
	rec := flow.Records[0]
	if got := flow.Origin(rec); got != (Position{Lat: 10, Lon: 20}) {
		t.Errorf("Origin = %+v", got)
	}
	if got := flow.Target(rec); got != (Position{Lat: 30, Lon: 40}) {
		t.Errorf("Target = %+v", got)
	}
	if w := flow.Width(rec); w < lineWidthMin || w > lineWidthMax {
		t.Errorf("Width = %v outside [%v, %v]", w, lineWidthMin, lineWidthMax)
	}

	marker := layerByKind(t, layers, KindMarker)
	for _, mr := range marker.Records {
		if r := marker.Radius(mr); r < geoRadiusMin || r > geoRadiusMax {
			t.Errorf("Radius(%s) = %v outside range", mr.Str("Code"), r)
		}
		if pr := marker.PixelRadius(mr); pr < pixelRadiusMin || pr > pixelRadiusMax {
			t.Errorf("PixelRadius(%s) = %v outside range", mr.Str("Code"), pr)
		}
	}

	volume := layerByKind(t, layers, KindVolume)
	if e := volume.Elevation(volume.Records[0]); e < elevationMin || e > elevationMax {
		t.Errorf("Elevation = %v outside range", e)
	}

	if c := flow.Color(rec); c.A != colorAlpha {
		t.Errorf("Color alpha = %d, want %d", c.A, colorAlpha)
	}
}

func TestLayerCallbacksDriveSelection(t *testing.T) {
	var sel selectionState
	layers := buildLayers(layerRecords(), defaultFieldConfig(), allKindsOn(), &sel)
	marker := layerByKind(t, layers, KindMarker)
	a, b := marker.Records[0], marker.Records[1]

	marker.OnHover(a, 1, 2)
	if got, ok := sel.Active(); !ok || !recordsEqual(got, a) {
		t.Fatal("hover callback should install a hover selection")
	}

	marker.OnClick(a, 1, 2)
	if !sel.Pinned() {
		t.Fatal("click callback should pin")
	}

	marker.OnHover(b, 3, 4)
	if got, _ := sel.Active(); !recordsEqual(got, a) {
		t.Fatal("hover callback must not displace a pin")
	}

	marker.OnClick(a, 1, 2)
	if _, ok := sel.Active(); ok {
		t.Fatal("clicking the pinned record again should unpin")
	}
}
