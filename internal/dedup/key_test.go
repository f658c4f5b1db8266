package dedup

import "testing"

func TestComputePriority(t *testing.T) {
	tests := []struct {
		name string
		doi  string
		link string
		want Key
	}{
		{
			"doi wins over arxiv link",
			"10.1103/PhysRevLett.136.031001",
			"https://arxiv.org/abs/2408.01234v2",
			Key{KindDOI, "10.1103/physrevlett.136.031001"},
		},
		{
			"arxiv id from link",
			"",
			"https://arxiv.org/abs/2408.01234v2",
			Key{KindArxiv, "2408.01234"},
		},
		{
			"arxiv id from pdf link",
			"",
			"https://arxiv.org/pdf/2408.01234",
			Key{KindArxiv, "2408.01234"},
		},
		{
			"plain link lowercased",
			"",
			"https://X.org/Articles/ABC",
			Key{KindLink, "https://x.org/articles/abc"},
		},
		{
			"empty everything",
			"",
			"",
			Key{KindLink, ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.doi, tt.link); got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSameDOIDifferentLinksCollapse(t *testing.T) {
	a := Compute("10.1103/PhysRevB.111.100001", "https://journals.aps.org/prb/abstract/10.1103/PhysRevB.111.100001")
	b := Compute("10.1103/PHYSREVB.111.100001", "https://doi.org/10.1103/PhysRevB.111.100001")
	if a != b {
		t.Errorf("keys differ: %+v vs %+v", a, b)
	}
}

func TestSetAddOnce(t *testing.T) {
	s := NewSet()
	k := Compute("", "https://arxiv.org/abs/2408.01234")
	if !s.Add(k) {
		t.Error("first Add() = false, want true")
	}
	if s.Add(k) {
		t.Error("second Add() = true, want false")
	}
	if len(s) != 1 {
		t.Errorf("len(set) = %d, want 1", len(s))
	}
}
