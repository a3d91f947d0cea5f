package mock

import "github.com/fwojciec/diskreport"

var _ diskreport.Parser = (*Parser)(nil)

// Parser is a mock implementation of diskreport.Parser.
type Parser struct {
	ParseFn func(path, fileName string) []*diskreport.DriveRecord
}

func (p *Parser) Parse(path, fileName string) []*diskreport.DriveRecord {
	return p.ParseFn(path, fileName)
}
