// Package survey defines the shot/station data model and the resolver
// that turns an ordered list of polar shots into absolute 3D station
// positions for a single survey.
//
// Resolution is a multi-pass traversal: a shot whose from-station is not
// yet positioned is deferred; once a full pass makes no progress the
// remaining shots are reported as orphaned (unreachable from the start).
// Invalid shots (non-finite or negative measurements) are excluded up
// front. Both conditions are diagnostics attached to the survey, never
// failures — only structurally corrupt input (a nil survey, a cyclic
// alias chain) aborts the call.
//
// Position assignment follows first-resolution-wins: the first shot to
// reach a station fixes its position, and any later shot between two
// already-positioned stations is a loop-closing edge that contributes to
// the station graph but never repositions an endpoint. Splay and
// auxiliary shots terminate at leaf stations that are never traversed
// further. Given identical inputs, Resolve reproduces bit-identical
// positions.
package survey
