package pagecache

import "testing"

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "basic",
			key:  Key{Feed: "articles", Position: 0, PageSize: 20},
			want: "scrollpager:page:articles:0:20",
		},
		{
			name: "deep_page",
			key:  Key{Feed: "articles", Position: 140, PageSize: 20},
			want: "scrollpager:page:articles:140:20",
		},
		{
			name: "empty_feed",
			key:  Key{Position: 10, PageSize: 5},
			want: "scrollpager:page::10:5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key{Feed: "feed", Position: 40, PageSize: 20}
	b := Key{Feed: "feed", Position: 40, PageSize: 20}

	if a.String() != b.String() {
		t.Errorf("Equal keys produced different strings: %q vs %q", a.String(), b.String())
	}

	c := Key{Feed: "feed", Position: 40, PageSize: 10}
	if a.String() == c.String() {
		t.Error("Keys with different page sizes must not collide")
	}
}
