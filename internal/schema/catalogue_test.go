package schema

import "testing"

func TestLoadCatalogueScalarAndNested(t *testing.T) {
	data := []byte(`
/odom:
  fields:
    x: number
    pose:
      fields:
        y: number
  constants:
    OK:
      value: 0
      type: number
/scan:
  fields:
    ranges:
      array: number
      length: 360
`)
	cat, err := LoadCatalogue(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	odom, ok := cat.Lookup("/odom")
	if !ok || !odom.IsMessage() {
		t.Fatalf("expected /odom to be a message schema")
	}
	x, ok := odom.Fields()["x"]
	if !ok || !x.IsNumber() {
		t.Fatalf("expected /odom.x to be a number")
	}
	pose, ok := odom.Fields()["pose"]
	if !ok || !pose.IsMessage() {
		t.Fatalf("expected /odom.pose to be a nested message")
	}
	if _, ok := odom.Constants()["OK"]; !ok {
		t.Fatalf("expected /odom to declare constant OK")
	}

	scan, ok := cat.Lookup("/scan")
	if !ok {
		t.Fatalf("expected /scan in catalogue")
	}
	ranges := scan.Fields()["ranges"]
	if !ranges.IsArray() {
		t.Fatalf("expected /scan.ranges to be an array")
	}
	if contains, known := ranges.ContainsIndex(359); !known || !contains {
		t.Errorf("expected index 359 to be within bounds")
	}
	if contains, known := ranges.ContainsIndex(360); !known || contains {
		t.Errorf("expected index 360 to be out of bounds")
	}
}

func TestLoadCatalogueUnknownScalar(t *testing.T) {
	if _, err := LoadCatalogue([]byte("/t:\n  fields:\n    f: nonsense\n")); err == nil {
		t.Errorf("expected an error for an unknown scalar type")
	}
}
