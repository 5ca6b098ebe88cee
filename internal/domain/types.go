package domain

type PersonID = int64
type MessageID = int64
