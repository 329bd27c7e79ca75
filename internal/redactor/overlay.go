// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactor

import (
	"encoding/json"
	"fmt"
	"os"
)

// OverlayMapRenderer writes the geometric match set as a sidecar overlay
// map next to the redacted copy. The drawing component consumes the map to
// paint opaque boxes; keeping the map separate preserves the entity text
// behind each region for logging and reporting.
type OverlayMapRenderer struct{}

// overlayMapSuffix names the sidecar file.
const overlayMapSuffix = ".regions.json"

// Render writes one overlay map for the whole document.
func (o *OverlayMapRenderer) Render(pdfPath string, pages []PageRegions) error {
	f, err := os.OpenFile(pdfPath+overlayMapSuffix, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("creating overlay map: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pages); err != nil {
		return fmt.Errorf("writing overlay map: %w", err)
	}
	return nil
}
