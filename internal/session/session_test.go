package session

import (
	"strings"
	"testing"

	"github.com/sarasvatiZen/replaylist/internal/providers"
)

func TestDecode(t *testing.T) {
	t.Run("Empty Query Yields Default", func(t *testing.T) {
		s := Decode("")
		if !s.Equal(Default()) {
			t.Errorf("expected default session, got %+v", s)
		}
		if s.ActiveSource() != providers.Apple {
			t.Errorf("expected apple active by default, got %s", s.ActiveSource())
		}
		if s.ActiveDestination() != providers.Spotify {
			t.Errorf("expected spotify destination by default, got %s", s.ActiveDestination())
		}
	})

	t.Run("Leading Question Mark Is Tolerated", func(t *testing.T) {
		s := Decode("?left=youtube&right=spotify&li=0")
		if s.ActiveSource() != providers.YouTube {
			t.Errorf("expected youtube, got %s", s.ActiveSource())
		}
	})

	t.Run("Unknown Tokens Are Dropped", func(t *testing.T) {
		s := Decode("left=apple,bogus,youtube&right=spotify&li=0")
		want := []providers.Provider{providers.Apple, providers.YouTube}
		if len(s.Sources) != len(want) {
			t.Fatalf("expected %d sources, got %v", len(want), s.Sources)
		}
		for i, p := range want {
			if s.Sources[i] != p {
				t.Errorf("source %d: expected %s, got %s", i, p, s.Sources[i])
			}
		}
	})

	t.Run("Destination Claims Duplicates", func(t *testing.T) {
		s := Decode("left=apple,bogus,spotify&right=spotify&li=0")
		if len(s.Sources) != 1 || s.Sources[0] != providers.Apple {
			t.Errorf("expected [apple], got %v", s.Sources)
		}
		if len(s.Destinations) != 1 || s.Destinations[0] != providers.Spotify {
			t.Errorf("expected [spotify], got %v", s.Destinations)
		}
	})

	t.Run("Lists Stay Disjoint", func(t *testing.T) {
		s := Decode("left=spotify,youtube&right=spotify&li=0")
		for _, src := range s.Sources {
			for _, dst := range s.Destinations {
				if src == dst {
					t.Errorf("provider %s present in both lists", src)
				}
			}
		}
	})

	t.Run("Empty Source List Falls Back To Defaults", func(t *testing.T) {
		s := Decode("left=bogus&right=spotify&li=1")
		if len(s.Sources) != 3 {
			t.Fatalf("expected 3 default sources, got %v", s.Sources)
		}
	})

	t.Run("Right Claiming Every Provider Cedes Back", func(t *testing.T) {
		queries := []string{
			"right=apple,spotify,youtube,amazon",
			"left=bogus&right=apple,spotify,youtube,amazon&li=5",
		}
		for _, query := range queries {
			s := Decode(query)
			if len(s.Destinations) != 1 || s.Destinations[0] != providers.Apple {
				t.Errorf("%q: expected destinations trimmed to [apple], got %v", query, s.Destinations)
			}
			if len(s.Sources) == 0 {
				t.Fatalf("%q: source list is empty", query)
			}
			if s.Active < 0 || s.Active >= len(s.Sources) {
				t.Fatalf("%q: active index %d out of range for %v", query, s.Active, s.Sources)
			}
			if s.ActiveSource() == s.ActiveDestination() {
				t.Errorf("%q: active pair is not disjoint: %s", query, s.ActiveSource())
			}
			if got := Decode(s.Encode()); !got.Equal(s) {
				t.Errorf("%q: round trip changed session: %+v -> %+v", query, s, got)
			}
		}
	})

	t.Run("Active Index Clamps", func(t *testing.T) {
		cases := []struct {
			name  string
			query string
			want  int
		}{
			{"Negative", "left=youtube,apple&right=spotify&li=-3", 0},
			{"Too Large", "left=youtube,apple&right=spotify&li=99", 1},
			{"Non Numeric", "left=youtube,apple&right=spotify&li=abc", 1},
			{"Missing", "left=youtube,apple&right=spotify", 1},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if got := Decode(tc.query).Active; got != tc.want {
					t.Errorf("expected active %d, got %d", tc.want, got)
				}
			})
		}
	})

	t.Run("Malformed Query Degrades To Default", func(t *testing.T) {
		s := Decode("left=%zz&right=;;;")
		if !s.Equal(Default()) {
			t.Errorf("expected default session, got %+v", s)
		}
	})
}

func TestEncode(t *testing.T) {
	t.Run("Default Shape", func(t *testing.T) {
		got := Default().Encode()
		want := "left=youtube,apple,amazon&right=spotify&li=1"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("Commas Stay Raw", func(t *testing.T) {
		if enc := Default().Encode(); strings.Contains(enc, "%2C") {
			t.Errorf("expected raw commas, got %q", enc)
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		sessions := []Session{
			Default(),
			Default().Next(),
			Default().Prev(),
			Default().Swap(),
			Default().Next().Swap(),
			Decode("left=amazon&right=youtube&li=0"),
		}
		for _, s := range sessions {
			if got := Decode(s.Encode()); !got.Equal(s) {
				t.Errorf("round trip changed session: %+v -> %q -> %+v", s, s.Encode(), got)
			}
		}
	})

	t.Run("OAuth State Matches Encoding", func(t *testing.T) {
		s := Default()
		if s.OAuthState() != s.Encode() {
			t.Errorf("expected state %q, got %q", s.Encode(), s.OAuthState())
		}
	})
}

func TestNavigation(t *testing.T) {
	t.Run("Next Advances And Clamps", func(t *testing.T) {
		s := Default() // active 1 of 3
		s = s.Next()
		if s.Active != 2 {
			t.Errorf("expected active 2, got %d", s.Active)
		}
		s = s.Next()
		if s.Active != 2 {
			t.Errorf("expected no-op at last candidate, got %d", s.Active)
		}
	})

	t.Run("Prev Steps Back And Clamps", func(t *testing.T) {
		s := Default().Prev()
		if s.Active != 0 {
			t.Errorf("expected active 0, got %d", s.Active)
		}
		s = s.Prev()
		if s.Active != 0 {
			t.Errorf("expected no-op at first candidate, got %d", s.Active)
		}
	})

	t.Run("Swap Exchanges Active Pair", func(t *testing.T) {
		s := Default()
		src, dst := s.ActiveSource(), s.ActiveDestination()

		swapped := s.Swap()
		if swapped.ActiveSource() != dst {
			t.Errorf("expected active source %s, got %s", dst, swapped.ActiveSource())
		}
		if swapped.ActiveDestination() != src {
			t.Errorf("expected destination %s, got %s", src, swapped.ActiveDestination())
		}
		if swapped.Active != s.Active {
			t.Errorf("swap moved the active index: %d -> %d", s.Active, swapped.Active)
		}
	})

	t.Run("Swap Does Not Mutate The Receiver", func(t *testing.T) {
		s := Default()
		before := s.Encode()
		_ = s.Swap()
		if s.Encode() != before {
			t.Errorf("receiver mutated: %q -> %q", before, s.Encode())
		}
	})

	t.Run("Double Swap Restores", func(t *testing.T) {
		s := Default()
		if got := s.Swap().Swap(); !got.Equal(s) {
			t.Errorf("double swap changed session: %+v", got)
		}
	})
}

func TestStage(t *testing.T) {
	t.Run("Paths", func(t *testing.T) {
		cases := map[Stage]string{
			StageHome: "/",
			StageList: "/list",
			StageDone: "/done",
		}
		for stage, path := range cases {
			if stage.Path() != path {
				t.Errorf("stage %s: expected path %q, got %q", stage, path, stage.Path())
			}
			if StageFromPath(path) != stage {
				t.Errorf("path %q: expected stage %s", path, stage)
			}
		}
	})

	t.Run("Unknown Path Falls Back To Home", func(t *testing.T) {
		if got := StageFromPath("/nope"); got != StageHome {
			t.Errorf("expected home, got %s", got)
		}
	})
}
