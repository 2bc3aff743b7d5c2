package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Парсерные: tree-sitter восстанавливается сам, мы только сообщаем.
	ParInfo         Code = 1000
	ParSyntaxError  Code = 1001
	ParMissingToken Code = 1002

	// Event-escape: ядро анализа.
	EvtInfo           Code = 2000
	EvtStaleReference Code = 2001
	EvtStaleProperty  Code = 2002
	EvtStaleMethod    Code = 2003

	// I/O
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IONoInputFiles  Code = 4002

	// Конфигурация
	CfgInfo           Code = 5000
	CfgInvalidConfig  Code = 5001
	CfgBadPattern     Code = 5002
	CfgUnknownSetting Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	ParInfo:         "Parser information",
	ParSyntaxError:  "Syntax error in source file",
	ParMissingToken: "Missing token inserted by parser recovery",

	EvtInfo:           "Event analysis information",
	EvtStaleReference: "event-like value referenced after an async boundary",
	EvtStaleProperty:  "handler-scoped property read after an async boundary",
	EvtStaleMethod:    "one-shot event method called after an async boundary",

	IOInfo:          "I/O information",
	IOLoadFileError: "I/O load file error",
	IONoInputFiles:  "No input files matched",

	CfgInfo:           "Configuration information",
	CfgInvalidConfig:  "Invalid configuration file",
	CfgBadPattern:     "Invalid event name pattern",
	CfgUnknownSetting: "Unknown configuration setting",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("PAR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("EVT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
