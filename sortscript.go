package tablehtml

// SortScriptVersion identifies the revision of the sort script and
// stylesheet. Bump it whenever either changes.
const SortScriptVersion = "2"

// sortCSS styles headers of tables carrying the sortable class once the
// sort script has marked them.
const sortCSS = `
/* tablehtml sort styles v` + SortScriptVersion + ` */
.sortable th[data-sortable] {
    position: relative;
    cursor: pointer;
    user-select: none;
    transition: all 0.2s ease;
}

.sortable th[data-sortable]:hover {
    filter: brightness(1.1);
    transform: translateY(-1px);
    box-shadow: 0 2px 4px rgba(0,0,0,0.2);
}

.sortable th .sort-indicator {
    margin-left: 5px;
    font-size: 0.8em;
    opacity: 0.5;
}

.sortable th.sort-asc .sort-indicator,
.sortable th.sort-desc .sort-indicator {
    font-weight: bold;
    opacity: 1;
}

.sortable th.sort-asc,
.sortable th.sort-desc {
    filter: brightness(1.05);
}
`

// sortJS attaches click-to-sort behavior to every table.sortable. It must
// never contain caller data.
const sortJS = `
/* tablehtml sort script v` + SortScriptVersion + ` */
(function () {
    var NEUTRAL = '↕';
    var ASC = '↑';
    var DESC = '↓';
    var STRIP = /[,$€£¥%]/g;

    function cellText(row, column) {
        var cell = row.cells[column];
        return cell ? cell.textContent.trim() : '';
    }

    function inferType(rows, column) {
        if (!rows.length) {
            return 'string';
        }
        var sample = cellText(rows[0], column);
        var stripped = sample.replace(STRIP, '');
        if (stripped !== '' && !isNaN(Number(stripped))) {
            return 'number';
        }
        if (sample !== '' && !isNaN(Date.parse(sample))) {
            return 'date';
        }
        return 'string';
    }

    function sortKey(text, type) {
        switch (type) {
        case 'number':
            return parseFloat(text.replace(STRIP, '')) || 0;
        case 'date':
            return Date.parse(text) || 0;
        default:
            return text.toLowerCase();
        }
    }

    function sortTable(table, column) {
        var tbody = table.tBodies[0];
        if (!tbody) {
            return;
        }
        var rows = Array.prototype.slice.call(tbody.rows);
        var sameColumn = table.dataset.sortColumn === String(column);
        var ascending = !(sameColumn && table.dataset.sortDirection === 'asc');
        var type = inferType(rows, column);

        rows.sort(function (a, b) {
            var av = sortKey(cellText(a, column), type);
            var bv = sortKey(cellText(b, column), type);
            if (av < bv) {
                return ascending ? -1 : 1;
            }
            if (av > bv) {
                return ascending ? 1 : -1;
            }
            return 0;
        });
        rows.forEach(function (row) {
            tbody.appendChild(row);
        });

        table.dataset.sortColumn = String(column);
        table.dataset.sortDirection = ascending ? 'asc' : 'desc';

        var headers = table.querySelectorAll('th[data-sortable]');
        Array.prototype.forEach.call(headers, function (header, index) {
            var indicator = header.querySelector('.sort-indicator');
            header.classList.remove('sort-asc', 'sort-desc');
            if (index === column) {
                header.classList.add(ascending ? 'sort-asc' : 'sort-desc');
                if (indicator) {
                    indicator.textContent = ascending ? ASC : DESC;
                }
            } else if (indicator) {
                indicator.textContent = NEUTRAL;
            }
        });
    }

    function attach(table) {
        if (table.dataset.sortAttached === 'true') {
            return;
        }
        table.dataset.sortAttached = 'true';
        var headers = table.querySelectorAll('th');
        Array.prototype.forEach.call(headers, function (header, index) {
            header.setAttribute('data-sortable', 'true');
            var indicator = document.createElement('span');
            indicator.className = 'sort-indicator';
            indicator.textContent = NEUTRAL;
            header.appendChild(indicator);
            header.addEventListener('click', function () {
                sortTable(table, index);
            });
        });
    }

    function initializeSortableTables() {
        Array.prototype.forEach.call(document.querySelectorAll('table.sortable'), attach);
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', initializeSortableTables);
    } else {
        initializeSortableTables();
    }
})();
`

// SortAssets returns the sort stylesheet and script as <style> and
// <script> blocks. Both are empty unless the renderer is sortable.
func (r *Renderer) SortAssets() (css, js string) {
	if !r.cfg.Sortable {
		return "", ""
	}
	return SortStyle(), SortScript()
}

// SortStyle returns the sort stylesheet wrapped in a <style> block.
func SortStyle() string { return "<style>" + sortCSS + "</style>" }

// SortScript returns the sort script wrapped in a <script> block.
func SortScript() string { return "<script>" + sortJS + "</script>" }
