package tx

import (
	"encoding/json"
	"testing"
)

// FuzzSignedTxUnmarshal tests that arbitrary JSON input does not
// panic when unmarshaled into a SignedTx.
func FuzzSignedTxUnmarshal(f *testing.F) {
	f.Add([]byte(`{"transaction":{"id":"` + zeroHex64 + `","inputs":[{"index":0,"previous_hash":"` + zeroHex64 + `"}],"outputs":[{"balance":10,"address":"` + zeroHex40 + `"}]},"signature":"","pubkey":""}`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`null`))
	f.Add([]byte(`{"transaction":{"inputs":null,"outputs":null}}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		var signed SignedTx
		if err := json.Unmarshal(data, &signed); err != nil {
			return
		}
		// If unmarshal succeeded, these must not panic.
		signed.Hash()
		signed.CanonicalBytes()
		signed.Validate() // May fail but must not panic.
	})
}

const (
	zeroHex64 = "00000000" + "00000000" + "00000000" + "00000000" + "00000000" + "00000000" + "00000000" + "00000000"
	zeroHex40 = "00000000" + "00000000" + "00000000" + "00000000" + "00000000"
)
