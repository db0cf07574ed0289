package script

// Kind tags which standard shape a classified output script matched.
type Kind int

const (
	// Nonstandard covers any script whose shape isn't one of the three
	// recognized forms. Classification never fails; this is the catch-all.
	Nonstandard Kind = iota
	P2PK
	P2PKH
	P2SH
)

func (k Kind) String() string {
	switch k {
	case P2PK:
		return "P2PK"
	case P2PKH:
		return "P2PKH"
	case P2SH:
		return "P2SH"
	default:
		return "nonstandard"
	}
}

// Classification is the tagged-union result of classifying a raw output
// script: one of Pubkey/Hash is populated depending on Kind, and Raw
// always holds the original bytes.
type Classification struct {
	Kind   Kind
	Pubkey []byte // populated for P2PK
	Hash   []byte // populated for P2PKH and P2SH (20-byte hash160)
	Raw    []byte // the original script bytes, always populated
}

// Classify recognizes the three standard output-script shapes:
//
//	P2PKH: OP_DUP OP_HASH160 <20-byte push> OP_EQUALVERIFY OP_CHECKSIG
//	P2SH:  OP_HASH160 <20-byte push> OP_EQUAL
//	P2PK:  <push-of-N length> <N-byte pubkey> OP_CHECKSIG
//
// Any other shape — including a recognized leading opcode followed by
// bytes that don't complete one of these patterns — classifies as
// Nonstandard and returns the raw bytes. Classify never fails.
func Classify(raw []byte) Classification {
	if isP2PKH(raw) {
		return Classification{Kind: P2PKH, Hash: raw[3:23], Raw: raw}
	}
	if isP2SH(raw) {
		return Classification{Kind: P2SH, Hash: raw[2:22], Raw: raw}
	}
	if pubkey, ok := matchP2PK(raw); ok {
		return Classification{Kind: P2PK, Pubkey: pubkey, Raw: raw}
	}
	return Classification{Kind: Nonstandard, Raw: raw}
}

func isP2PKH(raw []byte) bool {
	return len(raw) == 25 &&
		raw[0] == OpDup &&
		raw[1] == OpHash160 &&
		raw[2] == 0x14 && // push 20 bytes
		raw[23] == OpEqualVerify &&
		raw[24] == OpCheckSig
}

func isP2SH(raw []byte) bool {
	return len(raw) == 23 &&
		raw[0] == OpHash160 &&
		raw[1] == 0x14 && // push 20 bytes
		raw[22] == OpEqual
}

// matchP2PK recognizes the legacy bare pay-to-pubkey shape: a leading
// byte that is a push-of-N-bytes length (not a named standard opcode),
// N bytes of pubkey, then OP_CHECKSIG. Any leading byte in the
// plausible push range (0x01-0x4B) is treated as a P2PK candidate.
func matchP2PK(raw []byte) ([]byte, bool) {
	if len(raw) < 2 || !IsDirectPush(raw[0]) {
		return nil, false
	}
	n := int(raw[0])
	if len(raw) != 1+n+1 {
		return nil, false
	}
	if raw[len(raw)-1] != OpCheckSig {
		return nil, false
	}
	return raw[1 : 1+n], true
}

// sighashAll is the signature-hash byte (0x01) appended to an ECDSA
// signature inside a signature script.
const sighashAll byte = 0x01

// InputScriptGuess is the display-only rendering of an ordinary
// (non-coinbase) signature script: a recognized signature-then-pubkey
// shape ending in SIGHASH_ALL, or the raw bytes when the shape doesn't
// match. Coinbase inputs are never passed through this path — their
// script bytes are opaque miner data, surfaced separately.
type InputScriptGuess struct {
	Recognized bool
	Signature  []byte
	Pubkey     []byte
	Raw        []byte
}

// ClassifyInputScript recognizes the common "push signature, push
// pubkey" shape used for display purposes only; it is never consulted
// by the decoder or by Classify.
func ClassifyInputScript(raw []byte) InputScriptGuess {
	if len(raw) < 2 || !IsDirectPush(raw[0]) {
		return InputScriptGuess{Raw: raw}
	}
	sigLen := int(raw[0])
	if len(raw) < 1+sigLen {
		return InputScriptGuess{Raw: raw}
	}
	sig := raw[1 : 1+sigLen]
	if len(sig) == 0 || sig[len(sig)-1] != sighashAll {
		return InputScriptGuess{Raw: raw}
	}
	rest := raw[1+sigLen:]
	if len(rest) < 2 || !IsDirectPush(rest[0]) {
		return InputScriptGuess{Raw: raw}
	}
	pubkeyLen := int(rest[0])
	if len(rest) != 1+pubkeyLen {
		return InputScriptGuess{Raw: raw}
	}
	return InputScriptGuess{
		Recognized: true,
		Signature:  sig,
		Pubkey:     rest[1 : 1+pubkeyLen],
		Raw:        raw,
	}
}
