// Package chaincontext provides the persisting-block type the engine
// evaluates its worldview under, and the block-synthesis logic the
// bootstrap entry points use when the caller supplies no explicit
// block.
package chaincontext

import "github.com/wqq1991/neo-gui-nel/crypto/hash256"

// SecondsPerBlock is NEO's historical block interval, in seconds. See
// DESIGN.md for the decision to fix it at 15.
const SecondsPerBlock = 15

// Block mirrors the fields of a NEO block header that block synthesis
// actually sets, plus an empty witness and empty transaction list.
type Block struct {
	PreviousBlockHash     [32]byte
	TransactionsMerkleRoot [32]byte
	TimestampMS           int64
	Height                uint32
	ConsensusData         uint64
	NextConsensusProgram  []byte
	Witness               Witness
	Transactions          []Transaction
}

// Witness is an invocation/verification script pair, empty on a
// synthesized block.
type Witness struct {
	InvocationScript   []byte
	VerificationScript []byte
}

// Transaction is a placeholder for the transaction payloads a
// persisting block may carry; the engine never inspects their
// contents, only the block's own header fields.
type Transaction struct {
	Hash [32]byte
	Data []byte
}

// Hash returns the double-SHA256 digest of the block's previous hash,
// merkle root and height, used as the PreviousBlockHash of a
// block synthesized on top of it. This is a simplified stand-in for
// full header serialization, sufficient to produce a unique,
// deterministic chain of synthesized blocks for testing.
func (b *Block) Hash() [32]byte {
	buf := make([]byte, 0, 32+32+4)
	buf = append(buf, b.PreviousBlockHash[:]...)
	buf = append(buf, b.TransactionsMerkleRoot[:]...)
	buf = append(buf,
		byte(b.Height), byte(b.Height>>8), byte(b.Height>>16), byte(b.Height>>24))
	return hash256.Sum(buf)
}

// Tip returns a fixed genesis-like block used when the caller supplies
// no chain tip at all, matching the convention of bootstrapping from
// an initial block when none exists yet.
func Tip() *Block {
	return &Block{
		Height:      0,
		TimestampMS: 0,
	}
}

// SynthesizeBlock builds the default persisting block used by the
// bootstrap entry points when the caller supplies none: prev_hash from
// the tip's hash, zero merkle root, timestamp = tip + SecondsPerBlock,
// height = tip height + 1, consensus_data = 0, next_consensus copied
// from tip.
func SynthesizeBlock(tip *Block) *Block {
	if tip == nil {
		tip = Tip()
	}
	return &Block{
		PreviousBlockHash:    tip.Hash(),
		TimestampMS:          tip.TimestampMS + SecondsPerBlock*1000,
		Height:               tip.Height + 1,
		ConsensusData:        0,
		NextConsensusProgram: tip.NextConsensusProgram,
	}
}
