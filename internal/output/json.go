package output

import (
	"encoding/json"
	"io"

	"github.com/johnayers/aws-vault-shuffle/internal/models"
)

// RenderJSON writes the vaults as an indented JSON array. A nil slice renders
// as an empty array, not null.
func RenderJSON(w io.Writer, vaults []models.Vault) error {
	if vaults == nil {
		vaults = []models.Vault{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(vaults)
}
