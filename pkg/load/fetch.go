package load

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/andrew-torda/molstruct/molfile/zwrap"
)

// A Site is somewhere that serves mmCIF files by PDB code.
type Site struct {
	Base, Suffix string
	Gzipped      bool
}

// Sites are the wwPDB mirrors.
var Sites = []Site{
	{"https://files.rcsb.org/download/", ".cif.gz", true},
	{"https://www.ebi.ac.uk/pdbe/entry-files/download/", ".cif", false},
	{"https://pdbj.org/rest/newweb/fetch/file?cat=pdb&type=mmcif&id=", "", false},
}

var pdbCode = regexp.MustCompile(`^[0-9][A-Za-z0-9]{3}$`)

// site wraps siteNum around, so one can cycle through the sites.
func site(siteNum int) Site {
	if siteNum < 0 {
		siteNum = -siteNum
	}
	return Sites[siteNum%len(Sites)]
}

// URL is where site number siteNum has the file for code.
func URL(code string, siteNum int) (string, error) {
	if !pdbCode.MatchString(code) {
		return "", fmt.Errorf("PDB code should be four characters starting with a digit, not %q", code)
	}
	s := site(siteNum)
	return s.Base + strings.ToLower(code) + s.Suffix, nil
}

// Fetch downloads the mmCIF file for a PDB code. The File is named
// code.cif so the format can be guessed from the name.
func Fetch(ctx context.Context, client *http.Client, code string, siteNum int) (*File, error) {
	url, err := URL(code, siteNum)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	log.Infof("fetching %s", url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wanted %s using %s, got %s", code, url, resp.Status)
	}
	var body io.Reader = resp.Body
	if site(siteNum).Gzipped {
		zr, err := zwrap.Wrap(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", url, err)
		}
		defer zr.Close()
		body = zr
	}
	return FromReader(body, strings.ToLower(code)+".cif")
}
