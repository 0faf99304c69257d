package extract

import (
	"strings"
	"testing"
)

const scopesHTML = `
<html><body>
<h1>Sectoral scopes</h1>
<table>
  <tr><th>No.</th><th>Sectoral scope</th></tr>
  <tr><td>1</td><td>Energy industries (renewable/non-renewable sources)</td></tr>
  <tr><td>7</td><td>Transport</td></tr>
  <tr><td>13.</td><td><a href="/13">Waste handling and disposal</a></td></tr>
  <tr><td>notes</td><td>Rows without a numeric id are skipped</td></tr>
</table>
</body></html>`

func TestParseScopes(t *testing.T) {
	scopes, err := ParseScopes(strings.NewReader(scopesHTML))
	if err != nil {
		t.Fatalf("ParseScopes failed: %v", err)
	}

	if len(scopes) != 3 {
		t.Fatalf("expected 3 scopes, got %d: %+v", len(scopes), scopes)
	}

	if scopes[0].ID != "01" {
		t.Errorf("expected normalized id 01, got %s", scopes[0].ID)
	}
	if scopes[1].ID != "07" || scopes[1].Name != "Transport" {
		t.Errorf("unexpected scope: %+v", scopes[1])
	}
	if scopes[2].ID != "13" || scopes[2].Name != "Waste handling and disposal" {
		t.Errorf("link text not extracted: %+v", scopes[2])
	}
}

func TestParseScopes_NoRows(t *testing.T) {
	if _, err := ParseScopes(strings.NewReader("<html><body><p>nothing here</p></body></html>")); err == nil {
		t.Fatal("expected error for page without scope rows")
	}
}
