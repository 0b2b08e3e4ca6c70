package slugs

import "testing"

const base = "https://telegra.ph"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "Nukunuku-Mini-Holes-08-18", want: "Nukunuku-Mini-Holes-08-18"},
		{in: "  /Nukunuku-Mini-Holes-08-18/ ", want: "Nukunuku-Mini-Holes-08-18"},
		{in: "https://telegra.ph/Nukunuku-Mini-Holes-08-18", want: "Nukunuku-Mini-Holes-08-18"},
		{in: "https://TELEGRA.PH/Some-Post-01-02?ref=x#top", want: "Some-Post-01-02"},
		{in: "https://example.com/Some-Post-01-02", wantErr: true},
		{in: "https://telegra.ph/", wantErr: true},
		{in: "https://telegra.ph/file/abc.jpg", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.in, base)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Normalize(%q) = %q, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Normalize(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollect_DeduplicatesInOrder(t *testing.T) {
	got, err := Collect([]string{"b-01-01", "a-01-01", "https://telegra.ph/b-01-01", "c-01-01"}, base)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []string{"b-01-01", "a-01-01", "c-01-01"}
	if len(got) != len(want) {
		t.Fatalf("Collect = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Collect[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollect_RejectsForeignHost(t *testing.T) {
	if _, err := Collect([]string{"ok-01-01", "https://evil.example/x"}, base); err == nil {
		t.Fatal("expected error for foreign host")
	}
}

func TestQueue(t *testing.T) {
	q := NewQueue()
	if !q.Add("a") || !q.Add("b") || q.Add("a") {
		t.Fatal("unexpected Add results")
	}
	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2", q.Len())
	}

	var order []string
	for q.HasNext() {
		order = append(order, q.Next())
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v", order)
	}
}
