package format

import (
	"bufio"
	"fmt"
	"io"

	"github.com/stahnma/pds-didweb/internal/pds"
)

// WriteReport prints the fetched and matched counts followed by one numbered
// block per matching repo.
func WriteReport(w io.Writer, total int, matches []pds.Repo) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Total repos fetched: %d\n", total)
	fmt.Fprintf(bw, "\nDIDs using did:web: %d\n\n", len(matches))

	if len(matches) == 0 {
		fmt.Fprintln(bw, "No did:web repos found.")
		return bw.Flush()
	}

	fmt.Fprintln(bw, "List of did:web DIDs:")
	fmt.Fprintln(bw)
	for i, repo := range matches {
		fmt.Fprintf(bw, "%d. %s\n", i+1, repo.DID)
		if repo.Head != "" {
			fmt.Fprintf(bw, "   Head: %s\n", repo.Head)
		}
		if repo.Rev != "" {
			fmt.Fprintf(bw, "   Rev: %s\n", repo.Rev)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// WriteSaved prints the confirmation line for a written results file.
func WriteSaved(w io.Writer, path string) error {
	_, err := fmt.Fprintf(w, "\nResults saved to: %s\n", path)
	return err
}
