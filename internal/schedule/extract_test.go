package schedule

import "testing"

func TestExtractToken_ZeroAssignment(t *testing.T) {
	t.Run("Takes the 0= value up to the next semicolon", func(t *testing.T) {
		token, ok := ExtractToken("(tz=GMT;0=-17001615;hd=US)")
		if !ok {
			t.Fatal("Expected a token")
		}
		if token != "-17001615" {
			t.Errorf("Expected -17001615, got %s", token)
		}
	})

	t.Run("Runs to end of string without a semicolon", func(t *testing.T) {
		token, ok := ExtractToken("de(0=p04000930r09301600")
		if !ok || token != "p04000930r09301600" {
			t.Errorf("Expected p04000930r09301600, got %q ok=%v", token, ok)
		}
	})

	t.Run("Strips bytes outside the token alphabet", func(t *testing.T) {
		token, ok := ExtractToken("0= p0930 1600 (ET)")
		if !ok {
			t.Fatal("Expected a token")
		}
		if token != "p09301600" {
			t.Errorf("Expected p09301600, got %s", token)
		}
	})

	t.Run("Empty 0= value falls through to the scan", func(t *testing.T) {
		token, ok := ExtractToken("0=;r09301600")
		if !ok || token != "r09301600" {
			t.Errorf("Expected scan fallback r09301600, got %q ok=%v", token, ok)
		}
	})
}

func TestExtractToken_AlwaysOpenLiteral(t *testing.T) {
	token, ok := ExtractToken("(tz=GMT;de=0000+0000;hd=)")
	if !ok {
		t.Fatal("Expected a token")
	}
	if token != AlwaysOpenToken {
		t.Errorf("Expected %s, got %s", AlwaysOpenToken, token)
	}
}

func TestExtractToken_FragmentScan(t *testing.T) {
	t.Run("Concatenates matched windows in order", func(t *testing.T) {
		token, ok := ExtractToken("(tz=ET;de=p04000930 r09301600;hd=US)")
		if !ok {
			t.Fatal("Expected a token")
		}
		if token != "p04000930r09301600" {
			t.Errorf("Expected p04000930r09301600, got %s", token)
		}
	})

	t.Run("Keeps explicit overnight windows", func(t *testing.T) {
		token, ok := ExtractToken("something -22000100 else")
		if !ok || token != "-22000100" {
			t.Errorf("Expected -22000100, got %q ok=%v", token, ok)
		}
	})

	t.Run("Plain digit runs are chunked", func(t *testing.T) {
		token, ok := ExtractToken("de=0930160017002000x")
		if !ok || token != "0930160017002000" {
			t.Errorf("Expected 0930160017002000, got %q ok=%v", token, ok)
		}
	})
}

func TestExtractToken_NothingUsable(t *testing.T) {
	for _, def := range []string{"", "   ", "(tz=GMT;hd=US)", "no digits here"} {
		if token, ok := ExtractToken(def); ok {
			t.Errorf("Expected no token for %q, got %s", def, token)
		}
	}
}

func TestExtractToken_RoundTripsThroughParse(t *testing.T) {
	// Whatever the extractor returns must be consumable by the parser.
	defs := []string{
		"(tz=GMT;0=-17001615;hd=US)",
		"(tz=ET;de=p04000930r09301600a16002000;hd=US)",
		"(de=0000+0000)",
		"de=09301600",
	}
	for _, def := range defs {
		token, ok := ExtractToken(def)
		if !ok {
			t.Fatalf("Expected a token for %q", def)
		}
		if ivs := Parse(token); len(ivs) == 0 {
			t.Errorf("Extracted token %q does not parse", token)
		}
	}
}
