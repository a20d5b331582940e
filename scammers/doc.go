// Package scammers holds the presentation logic for reported profiles: the
// scam type badge classifier, the primary report aggregator, the card view
// model, the delete flow and the report submission schema.
package scammers
