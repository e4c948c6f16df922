package sip

// SIPVersion is the only protocol version carried by the token encoding.
const SIPVersion = "SIP/2.0"
