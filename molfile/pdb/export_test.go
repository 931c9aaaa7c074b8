package pdb

// Export some internal functions for testing

var ParseAtom = parseAtom
var ElementFromName = elementFromName

// SiteResidues returns chain and residue number pairs from a SITE line.
func SiteResidues(line string) (chains []string, nums []int) {
	for _, r := range parseSite(line) {
		chains = append(chains, r.chain)
		nums = append(nums, r.resNum)
	}
	return
}
