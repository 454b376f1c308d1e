package keyexchange

import (
	"fmt"

	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/pion/dtls/v2/pkg/crypto/prf"
)

// FinishedVerifyData computes the Finished verify_data over the raw
// handshake transcript (RFC 5246 §7.4.9). The transcript carries every
// handshake message that feeds the finish calculation, in wire order.
func FinishedVerifyData(masterSecret, transcript []byte, algorithm hash.Algorithm, isClient bool) ([]byte, error) {
	h := algorithm.CryptoHash().New

	var (
		verifyData []byte
		err        error
	)
	if isClient {
		verifyData, err = prf.VerifyDataClient(masterSecret, transcript, h)
	} else {
		verifyData, err = prf.VerifyDataServer(masterSecret, transcript, h)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoAdapterFailure, err)
	}
	return verifyData, nil
}
