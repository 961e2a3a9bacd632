// Package ldpc implements the 5G NR LDPC channel-coding chain of
// TS 38.212 §5.2-5.4: transport-block segmentation, systematic quasi-cyclic
// LDPC encoding, rate matching, and layered normalized min-sum decoding with
// HARQ soft combining.
//
// # Conformance warning
//
// This is NOT a bit-exact TS 38.212 implementation and must not be treated
// as one. The per-edge quasi-cyclic shift values of Tables 5.3.2-2/5.3.2-3
// (tens of thousands of individual constants) are not transcribed from the
// 3GPP tables: internal/graph/gen.go synthesizes a structurally-valid but
// numerically arbitrary substitute, because the retrieved reference corpus
// contains only the C++ code that *consumes* those tables, never the table
// literals themselves. See internal/graph's package doc and gen.go for the
// details, and DESIGN.md's "Known limitations" section for the full
// consequence chain. Concretely:
//
//   - Encode/RateMatch/Decode round-trip against each other correctly (the
//     structural invariants — degrees, shift ranges, the high-rate
//     recurrence shape — all hold), but the resulting code is not one a
//     real 3GPP gNB/UE would recognize, and this package's bits are not
//     interoperable with any conformant implementation.
//   - internal/ldpcdec's decoder runs belief propagation only over the
//     extension rows (see its firstDecodableRow doc): the high-rate region
//     is never decoded as ordinary check constraints, only solved via the
//     closed-form recurrence at encode time. A real §5.4.2 decoder
//     propagates beliefs through all M rows. This is a direct, unresolved
//     consequence of the fabricated high-rate shift data above, not an
//     independent simplification.
//
// Every other component (CRC, segmentation, rate matching's bit-selection
// arithmetic, the short-block codec) is grounded on transcribed or
// faithfully-ported reference data and is not affected by this warning.
//
// # Pipeline
//
// The transmit side runs:
//   - Segment: split a transport block (with its CRC already attached) into
//     codeblocks, each CRC-attached when there is more than one, and padded
//     to K*Z bits.
//   - Encode: expand each K*Z-bit codeblock into its full systematic
//     codeword via the base graph's parity-check structure.
//   - RateMatch: select and interleave E coded bits per codeblock from the
//     circular buffer, per redundancy version and modulation order.
//
// The receive side runs the inverse in reverse order: RateDematch
// deinterleaves and soft-combines received LLRs into a per-codeblock
// circular buffer (accumulating across HARQ retransmissions), Decode runs
// belief propagation to a hard decision (with CRC-gated early exit), and
// Desegment (the caller's own concatenation of decoded codeblocks) recovers
// the transport block.
//
// Short, uplink-control-sized payloads bypass the LDPC chain entirely via
// the (32,K) short block code in internal/shortblock.
//
// # Base graphs and lifting
//
// Two base graphs are defined (BG1 for high code rates and large
// transport blocks, BG2 otherwise), each lifted by one of 51 defined
// lifting sizes Z grouped into 8 lifting sets; see internal/graph.
package ldpc
