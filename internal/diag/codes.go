package diag

import "fmt"

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Прагмы
	PragmaInfo      Code = 2000
	PragmaMalformed Code = 2001
	PragmaDuplicate Code = 2002
	PragmaNoTarget  Code = 2003

	// Ошибки I/O
	IOFileNotFound   Code = 4001
	IODecodeFailure  Code = 4002
	IOCacheCorrupted Code = 4003

	// Модули
	ModInfo          Code = 5000
	ModNotFound      Code = 5001
	ModFileNotModule Code = 5002

	// AST
	ASTInfo          Code = 7000
	ASTUnhandledNode Code = 7001
	ASTNotATree      Code = 7002
	ASTBadArity      Code = 7003
	ASTDivByZero     Code = 7004

	// Внутренние
	InternalError      Code = 9000
	InternalForeignErr Code = 9001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	PragmaInfo:         "Pragma information",
	PragmaMalformed:    "Malformed pragma",
	PragmaDuplicate:    "Duplicate pragma",
	PragmaNoTarget:     "Pragma targets no known phase",
	IOFileNotFound:     "Source file not found",
	IODecodeFailure:    "Source file is not valid UTF-8",
	IOCacheCorrupted:   "Cache entry is corrupted",
	ModInfo:            "Module information",
	ModNotFound:        "Module not found",
	ModFileNotModule:   "Module path names a file, not a directory",
	ASTInfo:            "AST information",
	ASTUnhandledNode:   "Visitor cannot handle node kind",
	ASTNotATree:        "Node reachable more than once",
	ASTBadArity:        "Node has unexpected number of children",
	ASTDivByZero:       "Division by zero",
	InternalError:      "Internal compiler error",
	InternalForeignErr: "Unclassified error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PRG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("MOD%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("AST%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("ICE%04d", ic)
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
