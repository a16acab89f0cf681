// Package lineage checks that the content identifiers making up a claimed
// dataset→model lineage are all present on the pinning service.
package lineage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoIdentifiers is returned when a claim names no content identifiers.
var ErrNoIdentifiers = errors.New("lineage claim carries no content identifiers")

// ExistenceChecker is the slice of the pinning client the verifier needs.
type ExistenceChecker interface {
	Exists(ctx context.Context, cid string) (bool, error)
}

// Claim names the content identifiers of a lineage: the training dataset,
// an optional intermediate processing step, and the resulting model.
type Claim struct {
	DatasetCID    string `json:"datasetCid"`
	ProcessingCID string `json:"processingCid,omitempty"`
	ModelCID      string `json:"modelCid"`
}

// Verifier resolves lineage claims against the pinning service.
type Verifier struct {
	checker ExistenceChecker
}

// NewVerifier creates a verifier backed by the given existence checker.
func NewVerifier(checker ExistenceChecker) *Verifier {
	return &Verifier{checker: checker}
}

// Verify returns true only if every present identifier in the claim
// resolves on the pinning service. Presence alone is treated as lineage
// confirmation; there is no content-hash linkage between the model and its
// declared training dataset, so this is an availability check, not a proof.
func (v *Verifier) Verify(ctx context.Context, claim Claim) (bool, error) {
	cids := make([]string, 0, 3)
	for _, cid := range []string{claim.DatasetCID, claim.ProcessingCID, claim.ModelCID} {
		if cid != "" {
			cids = append(cids, cid)
		}
	}
	if len(cids) == 0 {
		return false, ErrNoIdentifiers
	}

	for _, cid := range cids {
		ok, err := v.checker.Exists(ctx, cid)
		if err != nil {
			return false, fmt.Errorf("existence check for %s: %w", cid, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
