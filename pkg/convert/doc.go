// Package convert translates dashboards between the legacy markup model
// ([simplexml.Dashboard]) and the modern JSON model ([studio.Dashboard]).
//
// [ToStudio] synthesizes ids and an absolute layout from the legacy row and
// panel nesting. [ToSimpleXML] infers rows from the y coordinates of the
// modern layout. Type strings are translated through a fixed table in one
// direction and recovered by substring match in the other, so the two
// functions are not exact inverses: converting legacy to modern, back to
// legacy and to modern again keeps titles, descriptions, panel titles and
// search queries and time ranges, but not necessarily ids or coordinates.
//
// Both directions are pure. They never fail, never modify their argument
// and are safe for concurrent use; anything that cannot be mapped is
// dropped or defaulted.
package convert
