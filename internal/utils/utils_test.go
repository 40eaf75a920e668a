package utils

import (
	"strings"
	"testing"
)

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"gold", "Gold"},
		{"Gold", "Gold"},
		{"émilie", "Émilie"},
	}

	for _, tt := range tests {
		if got := CapitalizeFirst(tt.in); got != tt.want {
			t.Errorf("CapitalizeFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChunkMessage(t *testing.T) {
	short := "hello"
	if chunks := ChunkMessage(short, 2000); len(chunks) != 1 || chunks[0] != short {
		t.Errorf("ChunkMessage(short) = %v", chunks)
	}

	long := strings.Repeat("a", 4500)
	chunks := ChunkMessage(long, 2000)
	if len(chunks) != 3 {
		t.Fatalf("len(chunks) = %d, want 3", len(chunks))
	}
	if len(chunks[0]) != 2000 || len(chunks[1]) != 2000 || len(chunks[2]) != 500 {
		t.Errorf("chunk sizes = %d, %d, %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	if strings.Join(chunks, "") != long {
		t.Error("chunks do not reassemble into the original message")
	}
}

func TestChampionNameMapper(t *testing.T) {
	tests := []struct {
		apiName  string
		forImage bool
		want     string
	}{
		{"Annie", true, "Annie"},
		{"Annie", false, "Annie"},
		{"MonkeyKing", false, "Wukong"},
		{"MonkeyKing", true, "MonkeyKing"},
		{"FiddleSticks", false, "Fiddlesticks"},
		{"FiddleSticks", true, "Fiddlesticks"},
	}

	for _, tt := range tests {
		if got := ChampionNameMapper(tt.apiName, tt.forImage); got != tt.want {
			t.Errorf("ChampionNameMapper(%q, %v) = %q, want %q", tt.apiName, tt.forImage, got, tt.want)
		}
	}
}

func TestCalculateWinRate(t *testing.T) {
	if got := CalculateWinRate(0, 0); got != 0 {
		t.Errorf("CalculateWinRate(0, 0) = %v, want 0", got)
	}
	if got := CalculateWinRate(60, 40); got != 60 {
		t.Errorf("CalculateWinRate(60, 40) = %v, want 60", got)
	}
	if got := CalculateWinRate(1, 3); got != 25 {
		t.Errorf("CalculateWinRate(1, 3) = %v, want 25", got)
	}
}

func TestGetRankColor(t *testing.T) {
	if got := GetRankColor("gold"); got != 0xFFD700 {
		t.Errorf("GetRankColor(gold) = %#x, want 0xFFD700", got)
	}
	if got := GetRankColor("UNRANKED"); got != 0xCCCCCC {
		t.Errorf("GetRankColor(UNRANKED) = %#x", got)
	}
	if got := GetRankColor("wood"); got != 0xFFFFFF {
		t.Errorf("GetRankColor(wood) = %#x, want the default", got)
	}
}
