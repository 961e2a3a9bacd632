// errors.go defines public error types for the ldpc package.

package ldpc

import "errors"

// Public error types for segmentation, encoding, rate matching, and
// decoding operations.
var (
	// ErrInvalidTransportBlock indicates a transport block payload whose
	// length is inconsistent with the caller-supplied parameters.
	ErrInvalidTransportBlock = errors.New("ldpc: invalid transport block length")

	// ErrInvalidBaseGraph indicates an unrecognized base graph selector.
	ErrInvalidBaseGraph = errors.New("ldpc: invalid base graph")

	// ErrInvalidLiftingSize indicates a lifting size outside the 51 values
	// defined by TS38.212 Table 5.3.2-1.
	ErrInvalidLiftingSize = errors.New("ldpc: invalid lifting size")

	// ErrInvalidRedundancyVersion indicates a redundancy version outside
	// [0,3].
	ErrInvalidRedundancyVersion = errors.New("ldpc: invalid redundancy version (must be 0-3)")

	// ErrInvalidLayerCount indicates an unsupported number of MIMO
	// transmission layers for transport-block-to-codeblock mapping.
	ErrInvalidLayerCount = errors.New("ldpc: invalid layer count")

	// ErrInvalidModulationOrder indicates a modulation order outside the
	// set NR defines bit interleaving for (1, 2, 4, 6, 8).
	ErrInvalidModulationOrder = errors.New("ldpc: invalid modulation order")

	// ErrCodewordLengthMismatch indicates a rate-matched or dematched
	// buffer whose length does not match the requested E.
	ErrCodewordLengthMismatch = errors.New("ldpc: codeword length mismatch")

	// ErrTooManyCodeblocks indicates a segmentation request whose derived
	// codeblock count exceeds what the caller's buffers were sized for.
	ErrTooManyCodeblocks = errors.New("ldpc: too many codeblocks")

	// ErrBufferTooSmall indicates an output buffer too small for the
	// requested operation.
	ErrBufferTooSmall = errors.New("ldpc: output buffer too small")

	// ErrShortBlockPayloadTooLarge indicates a short-block input exceeding
	// the 11-bit maximum TS38.212 defines for this code.
	ErrShortBlockPayloadTooLarge = errors.New("ldpc: short block payload exceeds 11 bits")
)
