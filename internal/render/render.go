// Package render is the display layer: it consumes parsed blocks and
// prints them, reversing on-disk little-endian hashes to the big-endian
// hex strings block explorers use, and never mutates what it's given.
// Plain text by default, one JSON object per block on request.
package render

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/smythg/blkscan/internal/blockfile"
	"github.com/smythg/blkscan/internal/digest"
	"github.com/smythg/blkscan/internal/script"
	"github.com/smythg/blkscan/internal/txn"
)

// Options controls how much detail Block renders.
type Options struct {
	// Addresses derives and prints a Base58Check address for standard
	// output-script shapes (P2PKH/P2SH/P2PK).
	Addresses bool
	// JSON renders one JSON object per block instead of plain text.
	JSON bool
}

func reverseHex(raw []byte) string {
	rev := make([]byte, len(raw))
	for i, b := range raw {
		rev[len(raw)-1-i] = b
	}
	return hex.EncodeToString(rev)
}

type jsonOutput struct {
	Kind      string `json:"kind"`
	Hash160   string `json:"hash160,omitempty"`
	Pubkey    string `json:"pubkey,omitempty"`
	Address   string `json:"address,omitempty"`
	LeadingOp string `json:"leading_op,omitempty"`
}

type jsonTxOut struct {
	Value  uint64     `json:"value_satoshi"`
	Script jsonOutput `json:"script"`
}

type jsonTxIn struct {
	Coinbase  bool   `json:"coinbase"`
	PrevTx    string `json:"prev_tx,omitempty"`
	PrevIdx   uint32 `json:"prev_index"`
	Signature string `json:"signature,omitempty"`
	Pubkey    string `json:"pubkey,omitempty"`
}

type jsonTx struct {
	ID      string      `json:"id"`
	Inputs  []jsonTxIn  `json:"inputs"`
	Outputs []jsonTxOut `json:"outputs"`
}

type jsonBlock struct {
	ID           string   `json:"id"`
	Version      uint32   `json:"version"`
	PrevBlock    string   `json:"prev_block"`
	MerkleRoot   string   `json:"merkle_root"`
	Time         uint32   `json:"time"`
	Bits         uint32   `json:"bits"`
	Nonce        uint32   `json:"nonce"`
	Transactions []jsonTx `json:"transactions"`
}

func classifyOutput(out *txn.TxOut, withAddress bool) jsonOutput {
	c := script.Classify(out.PubkeyScript)
	o := jsonOutput{Kind: c.Kind.String()}
	switch c.Kind {
	case script.P2PKH:
		o.Hash160 = hex.EncodeToString(c.Hash)
		if withAddress {
			o.Address = digest.AddressFromHash160(c.Hash, digest.VersionP2PKH)
		}
	case script.P2SH:
		o.Hash160 = hex.EncodeToString(c.Hash)
		if withAddress {
			o.Address = digest.AddressFromHash160(c.Hash, digest.VersionP2SH)
		}
	case script.P2PK:
		o.Pubkey = hex.EncodeToString(c.Pubkey)
		if withAddress {
			o.Address = digest.PubkeyToAddress(c.Pubkey)
		}
	case script.Nonstandard:
		if len(c.Raw) > 0 {
			if name, ok := script.OpcodeName(c.Raw[0]); ok {
				o.LeadingOp = name
			}
		}
	}
	return o
}

func toJSONBlock(b *blockfile.Block, opts Options) jsonBlock {
	jb := jsonBlock{
		ID:         b.ID(),
		Version:    b.Header.Version,
		PrevBlock:  reverseHex(b.Header.PrevBlock[:]),
		MerkleRoot: reverseHex(b.Header.MerkleRoot[:]),
		Time:       b.Header.Time,
		Bits:       b.Header.Bits,
		Nonce:      b.Header.Nonce,
	}
	for i := range b.Transactions {
		tx := &b.Transactions[i]
		jt := jsonTx{ID: reverseHex(tx.Hash())}
		for j := range tx.Inputs {
			in := &tx.Inputs[j]
			ji := jsonTxIn{Coinbase: in.IsCoinbase(), PrevIdx: in.PrevIndex}
			if !in.IsCoinbase() {
				ji.PrevTx = reverseHex(in.PrevTxHash[:])
				if guess := script.ClassifyInputScript(in.SignatureScript); guess.Recognized {
					ji.Signature = hex.EncodeToString(guess.Signature)
					ji.Pubkey = hex.EncodeToString(guess.Pubkey)
				}
			}
			jt.Inputs = append(jt.Inputs, ji)
		}
		for j := range tx.Outputs {
			jt.Outputs = append(jt.Outputs, jsonTxOut{
				Value:  tx.Outputs[j].Value,
				Script: classifyOutput(&tx.Outputs[j], opts.Addresses),
			})
		}
		jb.Transactions = append(jb.Transactions, jt)
	}
	return jb
}

// Block writes one block, in plain text or JSON per opts, to w.
func Block(w io.Writer, b *blockfile.Block, opts Options) error {
	jb := toJSONBlock(b, opts)
	if opts.JSON {
		enc := json.NewEncoder(w)
		return enc.Encode(jb)
	}

	fmt.Fprintf(w, "block %s\n", jb.ID)
	fmt.Fprintf(w, "  version=%d time=%d bits=0x%08x nonce=%d\n", jb.Version, jb.Time, jb.Bits, jb.Nonce)
	fmt.Fprintf(w, "  prev=%s\n", jb.PrevBlock)
	fmt.Fprintf(w, "  merkle=%s\n", jb.MerkleRoot)
	fmt.Fprintf(w, "  %d transaction(s)\n", len(jb.Transactions))
	for _, tx := range jb.Transactions {
		fmt.Fprintf(w, "  tx %s\n", tx.ID)
		for _, in := range tx.Inputs {
			if in.Coinbase {
				fmt.Fprintln(w, "    in  coinbase")
				continue
			}
			fmt.Fprintf(w, "    in  %s:%d\n", in.PrevTx, in.PrevIdx)
			if in.Pubkey != "" {
				fmt.Fprintf(w, "        sig=%s pubkey=%s\n", in.Signature, in.Pubkey)
			}
		}
		for _, out := range tx.Outputs {
			switch {
			case out.Script.Address != "":
				fmt.Fprintf(w, "    out %d satoshi -> %s (%s)\n", out.Value, out.Script.Address, out.Script.Kind)
			case out.Script.LeadingOp != "":
				fmt.Fprintf(w, "    out %d satoshi (%s, %s)\n", out.Value, out.Script.Kind, out.Script.LeadingOp)
			default:
				fmt.Fprintf(w, "    out %d satoshi (%s)\n", out.Value, out.Script.Kind)
			}
		}
	}
	return nil
}
