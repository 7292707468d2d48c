package typesystem

import "testing"

func TestCanBe(t *testing.T) {
	if !Item.CanBe(Number) {
		t.Errorf("Item should include Number")
	}
	if Item.CanBe(Array) {
		t.Errorf("Item should not include Array")
	}
}

func TestIsSingleton(t *testing.T) {
	if !Number.IsSingleton() {
		t.Errorf("Number should be a singleton")
	}
	if Primitive.IsSingleton() {
		t.Errorf("Primitive should not be a singleton")
	}
	if Type(0).IsSingleton() {
		t.Errorf("the empty set should not be a singleton")
	}
}

func TestCastNarrows(t *testing.T) {
	got, err := Item.Cast(Number)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Number {
		t.Errorf("Cast(Number) = %v, want %v", got.Name(), Number.Name())
	}
}

func TestCastEmptyFails(t *testing.T) {
	if _, err := Boolean.Cast(Number); err == nil {
		t.Errorf("expected a cast error narrowing Boolean to Number")
	}
}

func TestRemove(t *testing.T) {
	got, err := Primitive.Remove(Boolean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Number|String {
		t.Errorf("Remove(Boolean) = %s, want %s", got.Name(), (Number | String).Name())
	}
	if _, err := Boolean.Remove(Boolean); err == nil {
		t.Errorf("expected an error emptying the type set")
	}
}

func TestName(t *testing.T) {
	if Number.Name() != "number" {
		t.Errorf("Number.Name() = %q", Number.Name())
	}
	if (Number | String).Name() != "number or string" {
		t.Errorf("(Number|String).Name() = %q", (Number | String).Name())
	}
}
