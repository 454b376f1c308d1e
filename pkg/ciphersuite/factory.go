package ciphersuite

import (
	"fmt"

	"github.com/pion/dtls/v2/pkg/crypto/hash"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
)

// Factory builds CipherSuite instances over one crypto adapter. It is
// stateless; every Create call returns a fresh suite.
type Factory struct {
	adapter cryptoadapter.Adapter
}

func NewFactory(adapter cryptoadapter.Adapter) *Factory {
	return &Factory{adapter: adapter}
}

// Create maps a negotiated suite identifier to its record-protection
// implementation. The identifier set is fixed and was validated during
// cipher-suite negotiation, so an unknown value is a programming error
// and panics rather than returning an error.
func (f *Factory) Create(id SuiteID) CipherSuite {
	base := func(p params) baseSuite {
		return baseSuite{id: id, adapter: f.adapter, p: p}
	}

	switch id {
	case NullWithNullNull:
		return &nullSuite{baseSuite: base(params{
			cipher:  cryptoadapter.CipherNull,
			macHash: hash.None,
			prfHash: hash.SHA256,
		})}
	case PskWithNullSha256:
		return &nullSuite{baseSuite: base(params{
			cipher:    cryptoadapter.CipherNull,
			macHash:   hash.SHA256,
			macKeyLen: 32,
			prfHash:   hash.SHA256,
		})}
	case EcdheEcdsaWithNullSha1:
		return &nullSuite{baseSuite: base(params{
			cipher:    cryptoadapter.CipherNull,
			macHash:   hash.SHA1,
			macKeyLen: 20,
			prfHash:   hash.SHA256,
		})}
	case PskWithAes128GcmSha256, EcdheEcdsaWithAes128GcmSha256:
		return &gcmSuite{baseSuite: base(params{
			cipher:     cryptoadapter.CipherAes128Gcm,
			macHash:    hash.None,
			fixedIVLen: 4,
			prfHash:    hash.SHA256,
		})}
	case EcdheEcdsaWithAes256GcmSha384:
		return &gcmSuite{baseSuite: base(params{
			cipher:     cryptoadapter.CipherAes256Gcm,
			macHash:    hash.None,
			fixedIVLen: 4,
			prfHash:    hash.SHA384,
		})}
	case EcdheEcdsaWithAes128CbcSha256:
		return &cbcSuite{baseSuite: base(params{
			cipher:    cryptoadapter.CipherAes128Cbc,
			macHash:   hash.SHA256,
			macKeyLen: 32,
			prfHash:   hash.SHA256,
		})}
	case EcdheEcdsaWithAes256CbcSha384:
		return &cbcSuite{baseSuite: base(params{
			cipher:    cryptoadapter.CipherAes256Cbc,
			macHash:   hash.SHA384,
			macKeyLen: 48,
			prfHash:   hash.SHA384,
		})}
	default:
		panic(fmt.Sprintf("ciphersuite: Create called with %s", id))
	}
}
