package salary

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestParseCapHit(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"$10,500,000", 1050000000, true},
		{"$925,000", 92500000, true},
		{"$1,000,000 ", 100000000, true},
		{"10500000", 1050000000, true},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCapHit(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCapHit(%q) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseContracts(t *testing.T) {
	html := `<html><body><table>
		<tr><th>Player</th><th>Cap Hit</th></tr>
		<tr><td><a href="/player/auston-matthews">Auston Matthews</a></td><td>$13,250,000</td></tr>
		<tr><td><a href="/player/someone">No Money Row</a></td><td>UFA</td></tr>
		<tr><td>No Link Row</td><td>$1,000,000</td></tr>
	</table></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}

	contracts := parseContracts(doc, "TOR")
	if len(contracts) != 1 {
		t.Fatalf("got %d contracts, want 1", len(contracts))
	}
	c := contracts[0]
	if c.PlayerName != "Auston Matthews" {
		t.Errorf("name = %q", c.PlayerName)
	}
	if c.CapHitCents != 1325000000 {
		t.Errorf("cap hit = %d, want 1325000000", c.CapHitCents)
	}
	if c.TeamAbbrev != "TOR" {
		t.Errorf("team = %q", c.TeamAbbrev)
	}
}

func TestTeamCodesComplete(t *testing.T) {
	codes := TeamCodes()
	if len(codes) != 32 {
		t.Errorf("got %d team slugs, want 32", len(codes))
	}
}
