package imports

import (
	// Import all tool packages so their init functions register them
	_ "github.com/pdfagent/mcp-pdf-reader/internal/tools/listpdfs"
	_ "github.com/pdfagent/mcp-pdf-reader/internal/tools/pdfinfo"
	_ "github.com/pdfagent/mcp-pdf-reader/internal/tools/readpdftext"
	_ "github.com/pdfagent/mcp-pdf-reader/internal/tools/toolhelp"
)
