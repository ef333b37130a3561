// Package replay contains the idempotent replay-buffer actuator.
//
// Controller.SetDesired is the single entry point every liveness
// decision funnels into. It never touches the toggle directly from the
// calling context: the comparison and the start/stop call always run
// on the host main loop via the scheduler adapter, because liveness
// signals may be delivered from another context. On the loop the
// controller reads the host's own active-query as ground truth and
// issues a call only on mismatch, which makes repeated identical
// requests no-ops, collapses signal bursts (show immediately followed
// by activate) into at most one transition, and self-corrects when the
// buffer was toggled through another host path.
package replay
