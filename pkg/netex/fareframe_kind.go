package netex

import "strings"

type FareFrameKind string

const (
	FareFrameProduct FareFrameKind = "UK_PI_FARE_PRODUCT"
	FareFrameNetwork FareFrameKind = "UK_PI_FARE_NETWORK"
	FareFrameCommon  FareFrameKind = "UK_PI_COMMON"
	FareFrameOther   FareFrameKind = ""
)

// classifyFareFrame inspects a TypeOfFrameRef ref value and picks the frame
// variant. Unknown refs fall through to FareFrameOther and the frame is kept
// with no variant payload.
func classifyFareFrame(ref string) FareFrameKind {
	switch {
	case strings.Contains(ref, string(FareFrameProduct)):
		return FareFrameProduct
	case strings.Contains(ref, string(FareFrameNetwork)):
		return FareFrameNetwork
	case strings.Contains(ref, string(FareFrameCommon)):
		return FareFrameCommon
	}

	return FareFrameOther
}
