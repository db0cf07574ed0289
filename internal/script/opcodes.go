// Package script interprets output (and, for display, input) script
// bytes: recognizing the standard P2PKH/P2SH/P2PK shapes and deriving
// the payload (pubkey / pubkey-hash / script-hash) a caller needs to
// render an address. Classification is a pure function of the script
// bytes and never fails — unrecognized shapes come back Nonstandard.
package script

// Standard script opcodes relevant to output-script classification and
// to diagnostic rendering. Values match the Bitcoin Script reference.
const (
	Op0             byte = 0x00
	OpPushData1     byte = 0x4c
	OpPushData2     byte = 0x4d
	OpPushData4     byte = 0x4e
	Op1Negate       byte = 0x4f
	Op1             byte = 0x51
	Op16            byte = 0x60
	OpReturn        byte = 0x6a
	OpDup           byte = 0x76
	OpEqual         byte = 0x87
	OpEqualVerify   byte = 0x88
	OpHash160       byte = 0xa9
	OpHash256       byte = 0xaa
	OpCheckSig      byte = 0xac
	OpCheckSigVfy   byte = 0xad
	OpCheckMultiSig byte = 0xae
)

// opcodeNames maps standard opcode byte values to their mnemonic. A
// constant literal, not state built up in an init() function; exposed
// read-only through OpcodeName.
var opcodeNames = map[byte]string{
	0x00: "OP_0",
	0x4c: "OP_PUSHDATA1",
	0x4d: "OP_PUSHDATA2",
	0x4e: "OP_PUSHDATA4",
	0x4f: "OP_1NEGATE",
	0x51: "OP_1",
	0x52: "OP_2",
	0x53: "OP_3",
	0x54: "OP_4",
	0x55: "OP_5",
	0x56: "OP_6",
	0x57: "OP_7",
	0x58: "OP_8",
	0x59: "OP_9",
	0x5a: "OP_10",
	0x5b: "OP_11",
	0x5c: "OP_12",
	0x5d: "OP_13",
	0x5e: "OP_14",
	0x5f: "OP_15",
	0x60: "OP_16",
	0x63: "OP_IF",
	0x64: "OP_NOTIF",
	0x67: "OP_ELSE",
	0x68: "OP_ENDIF",
	0x69: "OP_VERIFY",
	0x6a: "OP_RETURN",
	0x6b: "OP_TOALTSTACK",
	0x6c: "OP_FROMALTSTACK",
	0x6d: "OP_2DROP",
	0x6e: "OP_2DUP",
	0x75: "OP_DROP",
	0x76: "OP_DUP",
	0x7c: "OP_SWAP",
	0x87: "OP_EQUAL",
	0x88: "OP_EQUALVERIFY",
	0x91: "OP_NOT",
	0x93: "OP_ADD",
	0x94: "OP_SUB",
	0xa6: "OP_RIPEMD160",
	0xa7: "OP_SHA1",
	0xa8: "OP_SHA256",
	0xa9: "OP_HASH160",
	0xaa: "OP_HASH256",
	0xac: "OP_CHECKSIG",
	0xad: "OP_CHECKSIGVERIFY",
	0xae: "OP_CHECKMULTISIG",
}

// OpcodeName returns the mnemonic for a standard opcode byte, for
// diagnostic rendering. The second return is false for bytes that are
// not a named opcode in the standard table — notably 0x01-0x4b, which
// are push-of-N-bytes lengths rather than opcodes.
func OpcodeName(b byte) (string, bool) {
	name, ok := opcodeNames[b]
	return name, ok
}

// IsDirectPush reports whether b is a push-of-N-bytes length byte
// (0x01-0x4B), the form a legacy P2PK pubkey push uses.
func IsDirectPush(b byte) bool {
	return b >= 0x01 && b <= 0x4b
}
