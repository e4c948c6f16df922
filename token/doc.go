// Package token decodes SIP messages compressed into binary token form.
//
// Token stream carries SIP start line, headers and body as dictionary
// references, learned literals and compact integer forms. Decoder walks
// the stream once and reports start line, headers, elements and body to
// Listener. MessageBuilder is Listener that assembles sip.Message.
//
//	msg, err := token.DecodeMessage(buf)
package token
