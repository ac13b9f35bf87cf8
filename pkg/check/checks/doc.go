// Package checks implements the built-in document checks.
//
// Importing the package registers every check with check.DefaultRegistry:
//
//	AX001 parse-failure          the parse session failed at a directive
//	AX002 unresolved-type        a registered tag has no known control type
//	AX003 user-control-fallback  a user control class could not be determined
//	AX004 case-conflict          control ids differ only by case
//	AX005 duplicate-id           a control id repeats
//	AX006 codefile-directive     CodeFile without CodeBehind (fixable)
//	AX007 unregistered-prefix    a server tag uses an unknown tag prefix
package checks
