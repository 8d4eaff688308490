package web

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ameg/ameg-charts-go/internal/application/lazyload"
	"github.com/ameg/ameg-charts-go/internal/application/navigation"
	"github.com/ameg/ameg-charts-go/internal/application/notify"
	"github.com/ameg/ameg-charts-go/internal/application/report"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

// Geometria da galeria de exportação usada pelo ViewportObserver.
const (
	headerHeight   = 260
	tileWidth      = 300
	tileHeight     = 200
	tileGap        = 16
	galleryColumns = 4
)

// PeriodOptions são as opções do seletor de período.
var PeriodOptions = []entity.FilterOption{
	{Value: entity.DefaultFilterValue, Label: "Todo o período"},
	{Value: "30", Label: "Últimos 30 dias"},
	{Value: "90", Label: "Últimos 90 dias"},
	{Value: "180", Label: "Últimos 6 meses"},
	{Value: "365", Label: "Último ano"},
}

// pageData é tudo o que é injetado na página gerada pelo go-echarts.
type pageData struct {
	Path     string
	Filter   entity.FilterState
	Bairros  []entity.FilterOption
	Banners  []report.Banner
	Toasts   []notify.Toast
	Gallery  []entity.SeriesLayout
	Interval int64
}

const pageStyle = `
.nav{display:flex;gap:12px;padding:10px 16px;background:#343a40}
.nav a{color:#ddd;text-decoration:none}
.nav a.active{color:#fff;font-weight:bold;border-bottom:2px solid #17a2b8}
.filters{padding:12px 16px;display:flex;gap:12px;align-items:center}
.alert{margin:8px 16px;padding:10px 14px;border-radius:4px;background:#f8d7da;color:#721c24;display:flex;gap:12px;align-items:center}
.alert form{display:inline}
#toasts{position:fixed;top:12px;right:12px;z-index:1000}
.toast{color:#fff;padding:8px 12px;margin-bottom:6px;border-radius:4px;display:flex;gap:8px}
.toast[hidden]{display:none}
.toast-close{background:none;border:0;color:#fff;cursor:pointer}
.gallery{display:flex;flex-wrap:wrap;gap:16px;padding:16px}
.gallery img{width:300px;height:200px;object-fit:contain;background:#f0f0f0}
.gallery img.error{outline:2px solid #dc3545}
`

// lazyScript carrega no navegador as imagens que ficaram fora da viewport inicial e
// atualiza os toasts enquanto a aba estiver visível.
const lazyScript = `
(function(){
  var imgs=document.querySelectorAll('img[data-src]');
  if('IntersectionObserver' in window){
    var o=new IntersectionObserver(function(es){es.forEach(function(e){
      if(!e.isIntersecting)return;var i=e.target;o.unobserve(i);
      var p=new Image();p.onload=function(){i.src=i.dataset.src;i.removeAttribute('data-src');i.classList.add('loaded');};
      p.onerror=function(){i.classList.add('error');i.alt='Erro ao carregar imagem';};p.src=i.dataset.src;
    });},{rootMargin:'50px 0px',threshold:0.01});
    imgs.forEach(function(i){o.observe(i);});
  }
  function dismiss(d){
    fetch('/charts/toasts/'+d.dataset.id+'/dismiss',{method:'POST'});d.remove();
  }
  function show(d){
    var b=d.querySelector('.toast-close');if(b)b.onclick=function(){dismiss(d);};
    setTimeout(function(){d.hidden=false;setTimeout(function(){d.remove();},%[2]d);},+d.dataset.delay||0);
  }
  document.querySelectorAll('#toasts .toast').forEach(show);
  function toasts(){
    if(document.visibilityState!=='visible')return;
    fetch('/charts/toasts').then(function(r){return r.json();}).then(function(ts){
      var c=document.getElementById('toasts');c.innerHTML='';
      (ts||[]).forEach(function(t){var d=document.createElement('div');d.className='toast';d.hidden=true;
        d.dataset.id=t.id;d.dataset.delay=Math.round(t.delay/1e6);d.style.background=t.color;
        var m=document.createElement('span');m.textContent=(t.notification.icon||'')+' '+t.notification.message;
        var b=document.createElement('button');b.type='button';b.className='toast-close';b.setAttribute('aria-label','Fechar');b.textContent='×';
        d.appendChild(m);d.appendChild(b);c.appendChild(d);show(d);});
    });
  }
  setInterval(toasts,%[1]d);
})();
`

// decorate injeta navegação, filtros, banners, toasts e a galeria no documento.
func decorate(doc *html.Node, data pageData) {
	if head := findFirst(doc, atom.Head); head != nil {
		head.AppendChild(el(atom.Style, nil, text(pageStyle)))
	}

	body := findFirst(doc, atom.Body)
	if body == nil {
		return
	}

	header := el(atom.Div, []string{"id", "dashboard-header"},
		navBar(),
		filterForm(data.Filter, data.Bairros),
	)
	for _, b := range data.Banners {
		header.AppendChild(bannerNode(b))
	}
	header.AppendChild(toastList(data.Toasts))
	header.AppendChild(gallery(data.Gallery))
	body.InsertBefore(header, body.FirstChild)

	body.AppendChild(el(atom.Script, nil, text(fmt.Sprintf(lazyScript, data.Interval, notify.ToastLifetime.Milliseconds()))))

	highlightNav(doc, data.Path)
}

func navBar() *html.Node {
	nav := el(atom.Nav, []string{"class", "nav"})
	for _, l := range navigation.DefaultLinks() {
		nav.AppendChild(el(atom.A, []string{"href", l.Href}, text(l.Label)))
	}
	return nav
}

// highlightNav marca com "active" os links de .nav que correspondem ao caminho atual.
func highlightNav(doc *html.Node, path string) {
	anchors := findAll(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.A && n.Parent != nil && hasClass(n.Parent, "nav")
	})

	links := make([]navigation.Link, len(anchors))
	for i, a := range anchors {
		links[i].Href, _ = attr(a, "href")
	}
	for i, l := range navigation.Highlight(links, path) {
		if l.Active {
			addClass(anchors[i], "active")
		} else {
			removeClass(anchors[i], "active")
		}
	}
}

func filterForm(filter entity.FilterState, bairros []entity.FilterOption) *html.Node {
	bairroOptions := append([]entity.FilterOption{{Value: entity.DefaultFilterValue, Label: "Todos os bairros"}}, bairros...)
	return el(atom.Form, []string{"class", "filters", "method", "get", "action", "/charts"},
		el(atom.Label, []string{"for", "periodo"}, text("Período")),
		selectNode("periodo", PeriodOptions, filter.Periodo),
		el(atom.Label, []string{"for", "bairro"}, text("Bairro")),
		selectNode("bairro", bairroOptions, filter.Bairro),
		el(atom.Button, []string{"type", "submit"}, text("Filtrar")),
	)
}

func selectNode(name string, options []entity.FilterOption, selected string) *html.Node {
	sel := el(atom.Select, []string{"id", name, "name", name})
	for _, o := range options {
		opt := el(atom.Option, []string{"value", o.Value}, text(o.Label))
		if o.Value == selected {
			setAttr(opt, "selected", "selected")
		}
		sel.AppendChild(opt)
	}
	return sel
}

func bannerNode(b report.Banner) *html.Node {
	return el(atom.Div, []string{"class", "alert", "role", "alert", "data-category", string(b.Category)},
		el(atom.Strong, nil, text(b.Title)),
		el(atom.Span, nil, text(b.Message)),
		el(atom.Form, []string{"method", "post", "action", "/charts/retry"},
			el(atom.Button, []string{"type", "submit"}, text("Tentar novamente")),
		),
		el(atom.Form, []string{"method", "post", "action", "/charts/banners/" + b.ID + "/dismiss"},
			el(atom.Button, []string{"type", "submit", "aria-label", "Fechar"}, text("×")),
		),
	)
}

// toastList renderiza os toasts ocultos; o script aplica o atraso de cada um, remove-os
// após ToastLifetime e liga o botão de fechar à rota de dismiss.
func toastList(toasts []notify.Toast) *html.Node {
	list := el(atom.Div, []string{"id", "toasts"})
	for _, t := range toasts {
		list.AppendChild(el(atom.Div, []string{
			"class", "toast",
			"hidden", "",
			"style", "background:" + t.Color,
			"data-id", t.ID,
			"data-delay", strconv.FormatInt(t.Delay.Milliseconds(), 10),
		},
			el(atom.Span, nil, text(t.Notification.Icon+" "+t.Notification.Message)),
			el(atom.Button, []string{
				"type", "button",
				"class", "toast-close",
				"aria-label", "Fechar",
				"data-dismiss", toastDismissPath(t.ID),
			}, text("×")),
		))
	}
	return list
}

func toastDismissPath(id string) string {
	return "/charts/toasts/" + id + "/dismiss"
}

func gallery(series []entity.SeriesLayout) *html.Node {
	g := el(atom.Div, []string{"class", "gallery"})
	for i, s := range series {
		g.AppendChild(el(atom.Figure, nil,
			el(atom.Img, []string{
				"data-src", exportPath(s.Slot),
				"data-width", strconv.Itoa(tileWidth),
				"data-height", strconv.Itoa(tileHeight),
				"data-index", strconv.Itoa(i),
				"alt", s.Title,
			}),
			el(atom.Figcaption, nil,
				el(atom.A, []string{"href", exportPath(s.Slot), "download", "grafico_" + s.Slot + ".png"}, text(s.Title)),
			),
		))
	}
	return g
}

func exportPath(slot string) string {
	return "/charts/export/" + slot + ".png"
}

// galleryImages retorna os <img data-src> com a posição calculada pela grade da galeria.
func galleryImages(doc *html.Node) []lazyload.Element {
	nodes := findAll(doc, func(n *html.Node) bool {
		_, ok := attr(n, lazyload.DeferredAttr)
		return n.DataAtom == atom.Img && ok
	})

	elements := make([]lazyload.Element, 0, len(nodes))
	for i, n := range nodes {
		row, col := i/galleryColumns, i%galleryColumns
		elements = append(elements, &imageNode{
			node: n,
			bounds: lazyload.Rect{
				X:      float64(tileGap + col*(tileWidth+tileGap)),
				Y:      float64(headerHeight + tileGap + row*(tileHeight+tileGap)),
				Width:  tileWidth,
				Height: tileHeight,
			},
		})
	}
	return elements
}
