package rules

// Parameter and plane identifiers produced by the built-in rules.
const (
	ParamProcessR = "NatronOfxParamProcessR"
	ParamProcessG = "NatronOfxParamProcessG"
	ParamProcessB = "NatronOfxParamProcessB"
	ParamProcessA = "NatronOfxParamProcessA"

	ColorPlaneID                 = "NatronColorPlane"
	BackwardMotionVectorsPlaneID = "NatronBackwardMotionVectorsPlane"
	ForwardMotionVectorsPlaneID  = "NatronForwardMotionVectorsPlane"
	DisparityLeftPlaneID         = "NatronDisparityLeftPlane"
	DisparityRightPlaneID        = "NatronDisparityRightPlane"
	MotionComponentsLabel        = "Motion"
	DisparityComponentsLabel     = "Disparity"
)
